package services

import (
	"context"
	"strings"
	"sync"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

type ReviewServiceInterface interface {
	ListReviews(ctx context.Context) ([]response_models.ReviewResponse, error)
	GetReview(ctx context.Context, id string) (response_models.ReviewResponse, error)
	ListByPlace(ctx context.Context, placeID string) ([]response_models.ReviewResponse, error)
	ListByUser(ctx context.Context, userID string) ([]response_models.ReviewResponse, error)
	CreateReview(ctx context.Context, placeID string, request request_models.CreateReviewRequest, caller Caller) (response_models.ReviewResponse, error)
	UpdateReview(ctx context.Context, id string, request request_models.UpdateReviewRequest, caller Caller) (response_models.ReviewResponse, error)
	DeleteReview(ctx context.Context, id string, caller Caller) error
}

type ReviewService struct {
	reviewRepo repositories.Repository[db_models.Review]
	placeRepo  repositories.Repository[db_models.Place]
	userRepo   repositories.Repository[db_models.User]

	// one review per user and place: held from the check to the save
	mu sync.Mutex
}

func NewReviewService(
	reviewRepo repositories.Repository[db_models.Review],
	placeRepo repositories.Repository[db_models.Place],
	userRepo repositories.Repository[db_models.User],
) ReviewServiceInterface {
	return &ReviewService{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
		userRepo:   userRepo,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *ReviewService) get(ctx context.Context, id string) (*db_models.Review, error) {
	review, err := s.reviewRepo.Get(ctx, id)
	if err != nil {
		return nil, databaseError(err, "get review")
	}
	if review == nil {
		return nil, utils.ErrReviewNotFound
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context) ([]response_models.ReviewResponse, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list reviews")
	}
	return mapAll(reviews, toReviewResponse), nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (response_models.ReviewResponse, error) {
	review, err := s.get(ctx, id)
	if err != nil {
		return response_models.ReviewResponse{}, err
	}
	return toReviewResponse(review), nil
}

func (s *ReviewService) ListByPlace(ctx context.Context, placeID string) ([]response_models.ReviewResponse, error) {
	place, err := s.placeRepo.Get(ctx, placeID)
	if err != nil {
		return nil, databaseError(err, "get place")
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	reviews, err := s.reviewRepo.FindBy(ctx, db_models.ReviewFieldPlaceID, place.ID.String())
	if err != nil {
		return nil, databaseError(err, "list place reviews")
	}
	return mapAll(reviews, toReviewResponse), nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]response_models.ReviewResponse, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, databaseError(err, "get user")
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	reviews, err := s.reviewRepo.FindBy(ctx, db_models.ReviewFieldUserID, user.ID.String())
	if err != nil {
		return nil, databaseError(err, "list user reviews")
	}
	return mapAll(reviews, toReviewResponse), nil
}

// CreateReview records the caller's review of a place. Hosts cannot review
// their own places and a user reviews a given place at most once.
func (s *ReviewService) CreateReview(ctx context.Context, placeID string, request request_models.CreateReviewRequest, caller Caller) (response_models.ReviewResponse, error) {
	if !validRating(request.Rating) {
		return response_models.ReviewResponse{}, utils.ErrInvalidRating
	}

	place, err := s.placeRepo.Get(ctx, placeID)
	if err != nil {
		return response_models.ReviewResponse{}, databaseError(err, "get place")
	}
	if place == nil {
		return response_models.ReviewResponse{}, utils.ErrPlaceNotFound
	}

	user, err := s.userRepo.Get(ctx, caller.UserID)
	if err != nil {
		return response_models.ReviewResponse{}, databaseError(err, "get user")
	}
	if user == nil {
		return response_models.ReviewResponse{}, utils.ErrUnauthorized
	}
	if place.HostID == user.ID {
		return response_models.ReviewResponse{}, utils.ErrOwnPlaceReview
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mine, err := s.reviewRepo.FindBy(ctx, db_models.ReviewFieldUserID, user.ID.String())
	if err != nil {
		return response_models.ReviewResponse{}, databaseError(err, "find user reviews")
	}
	for _, r := range mine {
		if r.PlaceID == place.ID {
			return response_models.ReviewResponse{}, utils.ErrAlreadyReviewed
		}
	}

	review := &db_models.Review{
		PlaceID: place.ID,
		UserID:  user.ID,
		Comment: strings.TrimSpace(request.Comment),
		Rating:  request.Rating,
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		if isDuplicate(err) {
			return response_models.ReviewResponse{}, utils.ErrAlreadyReviewed
		}
		return response_models.ReviewResponse{}, databaseError(err, "save review")
	}
	return toReviewResponse(review), nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, id string, request request_models.UpdateReviewRequest, caller Caller) (response_models.ReviewResponse, error) {
	review, err := s.get(ctx, id)
	if err != nil {
		return response_models.ReviewResponse{}, err
	}
	if !caller.CanModify(review.UserID) {
		return response_models.ReviewResponse{}, utils.ErrForbidden
	}
	if request.Rating != nil {
		if !validRating(*request.Rating) {
			return response_models.ReviewResponse{}, utils.ErrInvalidRating
		}
		review.Rating = *request.Rating
	}
	if request.Comment != nil {
		review.Comment = strings.TrimSpace(*request.Comment)
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return response_models.ReviewResponse{}, updateError(err, utils.ErrReviewNotFound, "update review")
	}
	return toReviewResponse(review), nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string, caller Caller) error {
	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanModify(review.UserID) {
		return utils.ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, review); err != nil {
		return databaseError(err, "delete review")
	}
	return nil
}
