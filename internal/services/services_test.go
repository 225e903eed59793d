package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"hbnb/internal/config"
	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/utils"
)

type ServiceSuite struct {
	suite.Suite
	newBackend func(t *testing.T) *repositories.Backend

	ctx     context.Context
	backend *repositories.Backend

	users     repositories.Repository[db_models.User]
	countries repositories.Repository[db_models.Country]
	cities    repositories.Repository[db_models.City]
	places    repositories.Repository[db_models.Place]
	amenities repositories.Repository[db_models.Amenity]
	links     repositories.Repository[db_models.PlaceAmenity]
	reviews   repositories.Repository[db_models.Review]

	revoked *mem.RevokedTokens
	tokens  *utils.TokenManager

	userSvc    UserServiceInterface
	countrySvc CountryServiceInterface
	citySvc    CityServiceInterface
	amenitySvc AmenityServiceInterface
	placeSvc   PlaceServiceInterface
	reviewSvc  ReviewServiceInterface
	dashSvc    DashboardService

	admin Caller
}

func TestServiceSuiteMemory(t *testing.T) {
	suite.Run(t, &ServiceSuite{newBackend: func(t *testing.T) *repositories.Backend {
		return &repositories.Backend{Kind: config.RepositoryMemory}
	}})
}

func TestServiceSuiteFile(t *testing.T) {
	suite.Run(t, &ServiceSuite{newBackend: func(t *testing.T) *repositories.Backend {
		store, err := repositories.NewFileStore(filepath.Join(t.TempDir(), "hbnb.json"))
		require.NoError(t, err)
		return &repositories.Backend{Kind: config.RepositoryFile, Store: store}
	}})
}

func TestServiceSuiteSQLite(t *testing.T) {
	suite.Run(t, &ServiceSuite{newBackend: func(t *testing.T) *repositories.Backend {
		backend, err := repositories.NewBackend(&config.Config{
			Repository:   config.RepositoryDB,
			DatabaseType: config.DatabaseSQLite,
			DatabaseURL:  ":memory:",
		})
		require.NoError(t, err)
		return backend
	}})
}

func repo[M any, PM repositories.Model[M]](s *ServiceSuite) repositories.Repository[M] {
	r, err := repositories.NewRepository[M, PM](s.backend)
	s.Require().NoError(err)
	return r
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = s.newBackend(s.T())
	s.users = repo[db_models.User](s)
	s.countries = repo[db_models.Country](s)
	s.cities = repo[db_models.City](s)
	s.places = repo[db_models.Place](s)
	s.amenities = repo[db_models.Amenity](s)
	s.links = repo[db_models.PlaceAmenity](s)
	s.reviews = repo[db_models.Review](s)

	s.revoked = mem.NewRevokedTokens()
	s.tokens = utils.NewTokenManager("test-secret", time.Hour)

	s.userSvc = NewUserService(s.users, s.places, s.reviews, s.tokens, s.revoked)
	s.countrySvc = NewCountryService(s.countries, s.cities)
	s.citySvc = NewCityService(s.cities, s.countries, s.places)
	s.amenitySvc = NewAmenityService(s.amenities, s.links)
	s.placeSvc = NewPlaceService(s.places, s.users, s.cities, s.amenities, s.links, s.reviews)
	s.reviewSvc = NewReviewService(s.reviews, s.places, s.users)
	s.dashSvc = NewDashboardService(s.users, s.countries, s.cities, s.places, s.amenities, s.reviews)

	s.admin = Caller{UserID: uuid.NewString(), IsAdmin: true}
}

func (s *ServiceSuite) TearDownTest() {
	s.backend.Close()
}

// concurrently runs fn n times and returns the errors in no particular order
func concurrently(n int, fn func() error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn()
		}(i)
	}
	wg.Wait()
	return errs
}

func (s *ServiceSuite) requireOneWinner(errs []error, loser error) {
	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		s.ErrorIs(err, loser)
	}
	s.Equal(1, wins)
}

func (s *ServiceSuite) signUp(email string) Caller {
	user, err := s.userSvc.CreateUser(s.ctx, request_models.SignUpRequest{
		Email:     email,
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	}, Caller{})
	s.Require().NoError(err)
	return Caller{UserID: user.ID}
}

func (s *ServiceSuite) city() response_models.CityResponse {
	_, err := s.countrySvc.CreateCountry(s.ctx, request_models.CreateCountryRequest{Code: "fr", Name: "France"})
	s.Require().NoError(err)
	city, err := s.citySvc.CreateCity(s.ctx, request_models.CreateCityRequest{Name: "Paris", CountryCode: "FR"})
	s.Require().NoError(err)
	return city
}

func (s *ServiceSuite) place(host Caller, cityID string) response_models.PlaceResponse {
	place, err := s.placeSvc.CreatePlace(s.ctx, request_models.CreatePlaceRequest{
		Name:          "Loft",
		CityID:        uuid.MustParse(cityID),
		PricePerNight: 120,
		MaxGuests:     2,
	}, host)
	s.Require().NoError(err)
	return place
}

func (s *ServiceSuite) TestCreateUserNormalizesEmailAndRejectsDuplicates() {
	user, err := s.userSvc.CreateUser(s.ctx, request_models.SignUpRequest{
		Email: "  Guest@Example.COM ", Password: "secret123", FirstName: "Ann",
	}, Caller{})
	s.Require().NoError(err)
	s.Equal("guest@example.com", user.Email)

	_, err = s.userSvc.CreateUser(s.ctx, request_models.SignUpRequest{
		Email: "guest@example.com", Password: "secret123",
	}, Caller{})
	s.ErrorIs(err, utils.ErrEmailAlreadyExists)
}

func (s *ServiceSuite) TestOnlyAdminCanGrantAdmin() {
	req := request_models.SignUpRequest{Email: "a@example.com", Password: "secret123", IsAdmin: true}
	user, err := s.userSvc.CreateUser(s.ctx, req, Caller{})
	s.Require().NoError(err)
	s.False(user.IsAdmin)

	req.Email = "b@example.com"
	user, err = s.userSvc.CreateUser(s.ctx, req, s.admin)
	s.Require().NoError(err)
	s.True(user.IsAdmin)

	self := Caller{UserID: user.ID}
	other := s.signUp("c@example.com")
	promote := true
	_, err = s.userSvc.UpdateUser(s.ctx, other.UserID, request_models.UpdateUserRequest{IsAdmin: &promote}, other)
	s.ErrorIs(err, utils.ErrForbidden)
	_, err = s.userSvc.UpdateUser(s.ctx, other.UserID, request_models.UpdateUserRequest{}, self)
	s.ErrorIs(err, utils.ErrForbidden, "non-admin callers only edit themselves")
}

func (s *ServiceSuite) TestLoginAndLogout() {
	s.signUp("host@example.com")

	_, err := s.userSvc.Login(s.ctx, request_models.LoginRequest{Email: "host@example.com", Password: "wrong"})
	s.ErrorIs(err, utils.ErrInvalidCredentials)
	_, err = s.userSvc.Login(s.ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	s.ErrorIs(err, utils.ErrInvalidCredentials)

	login, err := s.userSvc.Login(s.ctx, request_models.LoginRequest{Email: "HOST@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.Equal("Bearer", login.TokenType)
	s.Equal(int64(3600), login.ExpiresIn)

	claims, err := s.tokens.ValidateToken(login.AccessToken)
	s.Require().NoError(err)
	s.False(s.revoked.IsRevoked(claims.ID))

	s.userSvc.Logout(claims)
	s.True(s.revoked.IsRevoked(claims.ID))
}

func (s *ServiceSuite) TestCountryCodesAreCaseInsensitiveAndUnique() {
	country, err := s.countrySvc.CreateCountry(s.ctx, request_models.CreateCountryRequest{Code: "de", Name: "Germany"})
	s.Require().NoError(err)
	s.Equal("DE", country.Code)

	_, err = s.countrySvc.CreateCountry(s.ctx, request_models.CreateCountryRequest{Code: "DE", Name: "Again"})
	s.ErrorIs(err, utils.ErrCountryAlreadyExists)

	got, err := s.countrySvc.GetCountry(s.ctx, "de")
	s.Require().NoError(err)
	s.Equal("Germany", got.Name)

	_, err = s.countrySvc.GetCountry(s.ctx, "ZZ")
	s.ErrorIs(err, utils.ErrCountryNotFound)
}

func (s *ServiceSuite) TestCityRequiresExistingCountry() {
	_, err := s.citySvc.CreateCity(s.ctx, request_models.CreateCityRequest{Name: "Nowhere", CountryCode: "ZZ"})
	s.ErrorIs(err, utils.ErrInvalidReference)

	city := s.city()
	cities, err := s.countrySvc.ListCities(s.ctx, "fr")
	s.Require().NoError(err)
	s.Require().Len(cities, 1)
	s.Equal(city.ID, cities[0].ID)

	err = s.countrySvc.DeleteCountry(s.ctx, "FR")
	s.ErrorIs(err, utils.ErrStillReferenced)
}

func (s *ServiceSuite) TestPlaceOwnershipAndReferences() {
	host := s.signUp("host@example.com")
	guest := s.signUp("guest@example.com")

	_, err := s.placeSvc.CreatePlace(s.ctx, request_models.CreatePlaceRequest{
		Name: "Ghost", CityID: uuid.New(),
	}, host)
	s.ErrorIs(err, utils.ErrInvalidReference)

	city := s.city()
	place := s.place(host, city.ID)
	s.Equal(host.UserID, place.HostID)

	name := "Renamed"
	_, err = s.placeSvc.UpdatePlace(s.ctx, place.ID, request_models.UpdatePlaceRequest{Name: &name}, guest)
	s.ErrorIs(err, utils.ErrForbidden)

	updated, err := s.placeSvc.UpdatePlace(s.ctx, place.ID, request_models.UpdatePlaceRequest{Name: &name}, host)
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Name)

	s.ErrorIs(s.citySvc.DeleteCity(s.ctx, city.ID), utils.ErrStillReferenced)
	s.ErrorIs(s.userSvc.DeleteUser(s.ctx, host.UserID, host), utils.ErrStillReferenced)
	s.ErrorIs(s.placeSvc.DeletePlace(s.ctx, uuid.NewString(), s.admin), utils.ErrPlaceNotFound)
}

func (s *ServiceSuite) TestPlaceAmenityLinks() {
	host := s.signUp("host@example.com")
	place := s.place(host, s.city().ID)

	wifi, err := s.amenitySvc.CreateAmenity(s.ctx, request_models.CreateAmenityRequest{Name: "Wifi"})
	s.Require().NoError(err)
	_, err = s.amenitySvc.CreateAmenity(s.ctx, request_models.CreateAmenityRequest{Name: "Wifi"})
	s.ErrorIs(err, utils.ErrAmenityAlreadyExists)

	_, err = s.placeSvc.AddAmenity(s.ctx, place.ID, wifi.ID, host)
	s.Require().NoError(err)
	_, err = s.placeSvc.AddAmenity(s.ctx, place.ID, wifi.ID, host)
	s.ErrorIs(err, utils.ErrAmenityAlreadyLinked)

	listed, err := s.placeSvc.ListAmenities(s.ctx, place.ID)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("Wifi", listed[0].Name)

	s.Require().NoError(s.amenitySvc.DeleteAmenity(s.ctx, wifi.ID))
	count, err := s.links.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	s.ErrorIs(s.placeSvc.RemoveAmenity(s.ctx, place.ID, wifi.ID, host), utils.ErrAmenityNotFound)
}

func (s *ServiceSuite) TestReviewRules() {
	host := s.signUp("host@example.com")
	guest := s.signUp("guest@example.com")
	place := s.place(host, s.city().ID)

	_, err := s.reviewSvc.CreateReview(s.ctx, place.ID, request_models.CreateReviewRequest{Comment: "mine", Rating: 5}, host)
	s.ErrorIs(err, utils.ErrOwnPlaceReview)

	_, err = s.reviewSvc.CreateReview(s.ctx, place.ID, request_models.CreateReviewRequest{Comment: "bad", Rating: 6}, guest)
	s.ErrorIs(err, utils.ErrInvalidRating)

	review, err := s.reviewSvc.CreateReview(s.ctx, place.ID, request_models.CreateReviewRequest{Comment: "great", Rating: 4}, guest)
	s.Require().NoError(err)
	s.Equal(guest.UserID, review.UserID)

	_, err = s.reviewSvc.CreateReview(s.ctx, place.ID, request_models.CreateReviewRequest{Comment: "again", Rating: 3}, guest)
	s.ErrorIs(err, utils.ErrAlreadyReviewed)

	_, err = s.reviewSvc.CreateReview(s.ctx, uuid.NewString(), request_models.CreateReviewRequest{Comment: "x", Rating: 3}, guest)
	s.ErrorIs(err, utils.ErrPlaceNotFound)

	s.ErrorIs(s.reviewSvc.DeleteReview(s.ctx, review.ID, host), utils.ErrForbidden)

	byPlace, err := s.reviewSvc.ListByPlace(s.ctx, place.ID)
	s.Require().NoError(err)
	s.Len(byPlace, 1)

	// deleting the place takes its reviews with it
	s.Require().NoError(s.placeSvc.DeletePlace(s.ctx, place.ID, host))
	_, err = s.reviewSvc.GetReview(s.ctx, review.ID)
	s.ErrorIs(err, utils.ErrReviewNotFound)
}

func (s *ServiceSuite) TestDeleteUserCascadesReviews() {
	host := s.signUp("host@example.com")
	guest := s.signUp("guest@example.com")
	place := s.place(host, s.city().ID)

	_, err := s.reviewSvc.CreateReview(s.ctx, place.ID, request_models.CreateReviewRequest{Comment: "ok", Rating: 3}, guest)
	s.Require().NoError(err)

	s.Require().NoError(s.userSvc.DeleteUser(s.ctx, guest.UserID, s.admin))
	count, err := s.reviews.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	_, err = s.userSvc.GetUser(s.ctx, guest.UserID)
	s.ErrorIs(err, utils.ErrUserNotFound)
}

func (s *ServiceSuite) TestDashboard() {
	host := s.signUp("host@example.com")
	a := s.signUp("a@example.com")
	b := s.signUp("b@example.com")
	city := s.city()
	loft := s.place(host, city.ID)
	cabin := s.place(host, city.ID)

	for _, r := range []struct {
		place  string
		caller Caller
		rating int
	}{
		{loft.ID, a, 5},
		{loft.ID, b, 4},
		{cabin.ID, a, 2},
	} {
		_, err := s.reviewSvc.CreateReview(s.ctx, r.place, request_models.CreateReviewRequest{Comment: "c", Rating: r.rating}, r.caller)
		s.Require().NoError(err)
	}

	report, err := s.dashSvc.BuildDashboard(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(3), report.KPIs.TotalUsers)
	s.Equal(int64(2), report.KPIs.TotalPlaces)
	s.Equal(int64(3), report.KPIs.TotalReviews)
	s.Equal(3.67, report.KPIs.AverageRating)
	s.Require().Len(report.TopPlaces, 1)
	s.Equal(loft.ID, report.TopPlaces[0].PlaceID)
	s.Equal(4.5, report.TopPlaces[0].AverageRating)
}

func (s *ServiceSuite) TestConcurrentSignUpsKeepEmailUnique() {
	errs := concurrently(8, func() error {
		_, err := s.userSvc.CreateUser(s.ctx, request_models.SignUpRequest{
			Email: "dup@example.com", Password: "secret123",
		}, Caller{})
		return err
	})
	s.requireOneWinner(errs, utils.ErrEmailAlreadyExists)

	stored, err := s.users.FindBy(s.ctx, db_models.UserFieldEmail, "dup@example.com")
	s.Require().NoError(err)
	s.Len(stored, 1)
}

func (s *ServiceSuite) TestConcurrentCreatesKeepNamesAndCodesUnique() {
	errs := concurrently(8, func() error {
		_, err := s.amenitySvc.CreateAmenity(s.ctx, request_models.CreateAmenityRequest{Name: "Sauna"})
		return err
	})
	s.requireOneWinner(errs, utils.ErrAmenityAlreadyExists)

	errs = concurrently(8, func() error {
		_, err := s.countrySvc.CreateCountry(s.ctx, request_models.CreateCountryRequest{Code: "pt", Name: "Portugal"})
		return err
	})
	s.requireOneWinner(errs, utils.ErrCountryAlreadyExists)

	amenities, err := s.amenities.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, amenities)
	countries, err := s.countries.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, countries)
}

func (s *ServiceSuite) TestConcurrentReviewsAndLinksStaySingle() {
	host := s.signUp("host@example.com")
	guest := s.signUp("guest@example.com")
	place := s.place(host, s.city().ID)
	wifi, err := s.amenitySvc.CreateAmenity(s.ctx, request_models.CreateAmenityRequest{Name: "Wifi"})
	s.Require().NoError(err)

	errs := concurrently(8, func() error {
		_, err := s.reviewSvc.CreateReview(s.ctx, place.ID, request_models.CreateReviewRequest{Comment: "nice", Rating: 5}, guest)
		return err
	})
	s.requireOneWinner(errs, utils.ErrAlreadyReviewed)

	errs = concurrently(8, func() error {
		_, err := s.placeSvc.AddAmenity(s.ctx, place.ID, wifi.ID, host)
		return err
	})
	s.requireOneWinner(errs, utils.ErrAmenityAlreadyLinked)

	reviews, err := s.reviews.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, reviews)
	links, err := s.links.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, links)
}

func (s *ServiceSuite) TestUpdateEmailToTakenAddress() {
	s.signUp("first@example.com")
	second := s.signUp("second@example.com")

	taken := "FIRST@example.com"
	_, err := s.userSvc.UpdateUser(s.ctx, second.UserID, request_models.UpdateUserRequest{Email: &taken}, second)
	s.ErrorIs(err, utils.ErrEmailAlreadyExists)

	fresh := "third@example.com"
	updated, err := s.userSvc.UpdateUser(s.ctx, second.UserID, request_models.UpdateUserRequest{Email: &fresh}, second)
	s.Require().NoError(err)
	s.Equal(fresh, updated.Email)
}

func (s *ServiceSuite) TestBlankNamesAreRejected() {
	blank := "   "

	_, err := s.countrySvc.CreateCountry(s.ctx, request_models.CreateCountryRequest{Code: "es", Name: blank})
	s.ErrorIs(err, utils.ErrInvalidInput)
	_, err = s.amenitySvc.CreateAmenity(s.ctx, request_models.CreateAmenityRequest{Name: blank})
	s.ErrorIs(err, utils.ErrInvalidInput)

	city := s.city()
	_, err = s.countrySvc.UpdateCountry(s.ctx, "FR", request_models.UpdateCountryRequest{Name: &blank})
	s.ErrorIs(err, utils.ErrInvalidInput)
	_, err = s.citySvc.CreateCity(s.ctx, request_models.CreateCityRequest{Name: blank, CountryCode: "FR"})
	s.ErrorIs(err, utils.ErrInvalidInput)
	_, err = s.citySvc.UpdateCity(s.ctx, city.ID, request_models.UpdateCityRequest{Name: &blank})
	s.ErrorIs(err, utils.ErrInvalidInput)

	host := s.signUp("host@example.com")
	_, err = s.placeSvc.CreatePlace(s.ctx, request_models.CreatePlaceRequest{
		Name: blank, CityID: uuid.MustParse(city.ID),
	}, host)
	s.ErrorIs(err, utils.ErrInvalidInput)
	place := s.place(host, city.ID)
	_, err = s.placeSvc.UpdatePlace(s.ctx, place.ID, request_models.UpdatePlaceRequest{Name: &blank}, host)
	s.ErrorIs(err, utils.ErrInvalidInput)

	got, err := s.placeSvc.GetPlace(s.ctx, place.ID)
	s.Require().NoError(err)
	s.Equal("Loft", got.Name)
}

func (s *ServiceSuite) TestAdminChangeRevokesIssuedTokens() {
	user := s.signUp("staff@example.com")
	s.True(s.revoked.UserRevokedAt(user.UserID).IsZero())

	first := "Renamed"
	_, err := s.userSvc.UpdateUser(s.ctx, user.UserID, request_models.UpdateUserRequest{FirstName: &first}, user)
	s.Require().NoError(err)
	s.True(s.revoked.UserRevokedAt(user.UserID).IsZero(), "plain edits keep sessions")

	promote := true
	_, err = s.userSvc.UpdateUser(s.ctx, user.UserID, request_models.UpdateUserRequest{IsAdmin: &promote}, s.admin)
	s.Require().NoError(err)
	s.False(s.revoked.UserRevokedAt(user.UserID).IsZero())
}

func (s *ServiceSuite) TestDeleteUserRevokesIssuedTokens() {
	user := s.signUp("leaving@example.com")
	s.Require().NoError(s.userSvc.DeleteUser(s.ctx, user.UserID, user))
	s.False(s.revoked.UserRevokedAt(user.UserID).IsZero())
}
