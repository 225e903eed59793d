package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/utils"
)

type UserServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (response_models.LoginResponse, error)
	Logout(claims *utils.Claims)
	CreateUser(ctx context.Context, request request_models.SignUpRequest, caller Caller) (response_models.UserResponse, error)
	ListUsers(ctx context.Context) ([]response_models.UserResponse, error)
	GetUser(ctx context.Context, id string) (response_models.UserResponse, error)
	UpdateUser(ctx context.Context, id string, request request_models.UpdateUserRequest, caller Caller) (response_models.UserResponse, error)
	DeleteUser(ctx context.Context, id string, caller Caller) error
}

type UserService struct {
	userRepo   repositories.Repository[db_models.User]
	placeRepo  repositories.Repository[db_models.Place]
	reviewRepo repositories.Repository[db_models.Review]
	tokens     *utils.TokenManager
	revoked    mem.RevokedTokenStore

	// held from the email check to the write; only the db backend has a unique index
	emailMu sync.Mutex
}

func NewUserService(
	userRepo repositories.Repository[db_models.User],
	placeRepo repositories.Repository[db_models.Place],
	reviewRepo repositories.Repository[db_models.Review],
	tokens *utils.TokenManager,
	revoked mem.RevokedTokenStore,
) UserServiceInterface {
	return &UserService{
		userRepo:   userRepo,
		placeRepo:  placeRepo,
		reviewRepo: reviewRepo,
		tokens:     tokens,
		revoked:    revoked,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*db_models.User, error) {
	users, err := s.userRepo.FindBy(ctx, db_models.UserFieldEmail, normalizeEmail(email))
	if err != nil {
		return nil, databaseError(err, "find user by email")
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *UserService) Login(ctx context.Context, request request_models.LoginRequest) (response_models.LoginResponse, error) {

	startTime := time.Now()

	user, err := s.findByEmail(ctx, request.Email)
	if err != nil {
		return response_models.LoginResponse{}, err
	}

	if user == nil {
		return response_models.LoginResponse{}, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return response_models.LoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		return response_models.LoginResponse{}, err
	}

	log.Debug().Str("user_id", user.ID.String()).Dur("took", time.Since(startTime)).Msg("login")

	return response_models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *UserService) Logout(claims *utils.Claims) {
	if claims == nil || claims.ExpiresAt == nil {
		return
	}
	s.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
}

func (s *UserService) CreateUser(ctx context.Context, request request_models.SignUpRequest, caller Caller) (response_models.UserResponse, error) {

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return response_models.UserResponse{}, err
	}

	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	existing, err := s.findByEmail(ctx, request.Email)
	if err != nil {
		return response_models.UserResponse{}, err
	}
	if existing != nil {
		return response_models.UserResponse{}, utils.ErrEmailAlreadyExists
	}

	// only an admin can grant admin
	isAdmin := request.IsAdmin && caller.IsAdmin

	user := &db_models.User{
		Email:        normalizeEmail(request.Email),
		FirstName:    strings.TrimSpace(request.FirstName),
		LastName:     strings.TrimSpace(request.LastName),
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if isDuplicate(err) {
			return response_models.UserResponse{}, utils.ErrEmailAlreadyExists
		}
		return response_models.UserResponse{}, databaseError(err, "save user")
	}

	return toUserResponse(user), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]response_models.UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list users")
	}
	return mapAll(users, toUserResponse), nil
}

func (s *UserService) get(ctx context.Context, id string) (*db_models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, databaseError(err, "get user")
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (response_models.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return response_models.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, request request_models.UpdateUserRequest, caller Caller) (response_models.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return response_models.UserResponse{}, err
	}
	if !caller.CanModify(user.ID) {
		return response_models.UserResponse{}, utils.ErrForbidden
	}
	adminChanged := request.IsAdmin != nil && *request.IsAdmin != user.IsAdmin
	if adminChanged && !caller.IsAdmin {
		return response_models.UserResponse{}, utils.ErrForbidden
	}

	var hashedPassword string
	if request.Password != nil {
		if hashedPassword, err = utils.HashPassword(*request.Password); err != nil {
			return response_models.UserResponse{}, err
		}
	}

	s.emailMu.Lock()
	defer s.emailMu.Unlock()
	if request.Email != nil {
		email := normalizeEmail(*request.Email)
		if email != user.Email {
			existing, err := s.findByEmail(ctx, email)
			if err != nil {
				return response_models.UserResponse{}, err
			}
			if existing != nil {
				return response_models.UserResponse{}, utils.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if request.FirstName != nil {
		user.FirstName = strings.TrimSpace(*request.FirstName)
	}
	if request.LastName != nil {
		user.LastName = strings.TrimSpace(*request.LastName)
	}
	if request.Password != nil {
		user.PasswordHash = hashedPassword
	}
	if request.IsAdmin != nil {
		user.IsAdmin = *request.IsAdmin
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isDuplicate(err) {
			return response_models.UserResponse{}, utils.ErrEmailAlreadyExists
		}
		return response_models.UserResponse{}, updateError(err, utils.ErrUserNotFound, "update user")
	}

	// tokens carry is_admin, so the ones already issued must stop working
	if adminChanged {
		s.revokeSessions(user)
	}

	return toUserResponse(user), nil
}

// DeleteUser refuses while the user still hosts places and removes the
// user's reviews along with the account.
func (s *UserService) DeleteUser(ctx context.Context, id string, caller Caller) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanModify(user.ID) {
		return utils.ErrForbidden
	}

	hosted, err := s.placeRepo.FindBy(ctx, db_models.PlaceFieldHostID, user.ID.String())
	if err != nil {
		return databaseError(err, "find hosted places")
	}
	if len(hosted) > 0 {
		return fmt.Errorf("%w: user still hosts %d place(s)", utils.ErrStillReferenced, len(hosted))
	}

	reviews, err := s.reviewRepo.FindBy(ctx, db_models.ReviewFieldUserID, user.ID.String())
	if err != nil {
		return databaseError(err, "find user reviews")
	}
	for i := range reviews {
		if err := s.reviewRepo.Delete(ctx, &reviews[i]); err != nil {
			return databaseError(err, "delete user review")
		}
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return databaseError(err, "delete user")
	}
	s.revokeSessions(user)
	return nil
}

// revokeSessions rejects every token issued to user so far. The entry only
// has to outlive the longest token lifetime.
func (s *UserService) revokeSessions(user *db_models.User) {
	now := time.Now()
	s.revoked.RevokeUser(user.ID.String(), now, now.Add(s.tokens.TTL()))
	log.Info().Str("user_id", user.ID.String()).Msg("revoked issued tokens")
}
