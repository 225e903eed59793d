package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"hbnb/internal/api/controllers"
	"hbnb/internal/config"
	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/seed"
	"hbnb/internal/services"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/middleware"
	"hbnb/pkg/utils"
)

const (
	adminEmail    = "admin@hbnb.io"
	adminPassword = "admin1234"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type APISuite struct {
	suite.Suite
	newBackend func(t *testing.T) *repositories.Backend

	backend *repositories.Backend
	router  *gin.Engine
	admin   string
}

func TestAPISuiteMemory(t *testing.T) {
	suite.Run(t, &APISuite{newBackend: func(t *testing.T) *repositories.Backend {
		return &repositories.Backend{Kind: config.RepositoryMemory}
	}})
}

func TestAPISuiteSQLite(t *testing.T) {
	suite.Run(t, &APISuite{newBackend: func(t *testing.T) *repositories.Backend {
		backend, err := repositories.NewBackend(&config.Config{
			Repository:   config.RepositoryDB,
			DatabaseType: config.DatabaseSQLite,
			DatabaseURL:  ":memory:",
		})
		require.NoError(t, err)
		return backend
	}})
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Debug:         true,
		CORSOrigins:   []string{"*"},
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		SeedCountries: true,
	}

	s.backend = s.newBackend(s.T())
	backend := s.backend
	users, _ := repositories.NewRepository[db_models.User](backend)
	countries, _ := repositories.NewRepository[db_models.Country](backend)
	cities, _ := repositories.NewRepository[db_models.City](backend)
	places, _ := repositories.NewRepository[db_models.Place](backend)
	amenities, _ := repositories.NewRepository[db_models.Amenity](backend)
	links, _ := repositories.NewRepository[db_models.PlaceAmenity](backend)
	reviews, _ := repositories.NewRepository[db_models.Review](backend)
	s.Require().NoError(seed.Run(context.Background(), cfg, countries, users))

	tokens := utils.NewTokenManager("test-secret", time.Hour)
	revoked := mem.NewRevokedTokens()

	userSvc := services.NewUserService(users, places, reviews, tokens, revoked)
	reviewSvc := services.NewReviewService(reviews, places, users)
	handlers := Handlers{
		Users:     controllers.NewUserController(userSvc, reviewSvc),
		Countries: controllers.NewCountryController(services.NewCountryService(countries, cities)),
		Cities:    controllers.NewCityController(services.NewCityService(cities, countries, places)),
		Amenities: controllers.NewAmenityController(services.NewAmenityService(amenities, links)),
		Places:    controllers.NewPlaceController(services.NewPlaceService(places, users, cities, amenities, links, reviews), reviewSvc),
		Reviews:   controllers.NewReviewController(reviewSvc),
		Dashboard: controllers.NewDashboardController(services.NewDashboardService(users, countries, cities, places, amenities, reviews)),
	}
	s.router = NewRouter(cfg, handlers, tokens, revoked)
	s.admin = s.login(adminEmail, adminPassword)
}

func (s *APISuite) TearDownTest() {
	s.backend.Close()
}

func (s *APISuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *APISuite) data(env envelope, out any) {
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

func (s *APISuite) login(email, password string) string {
	w, env := s.do(http.MethodPost, "/users/login", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var token struct {
		AccessToken string `json:"access_token"`
	}
	s.data(env, &token)
	s.Require().NotEmpty(token.AccessToken)
	return token.AccessToken
}

func (s *APISuite) register(email string) (id, token string) {
	w, env := s.do(http.MethodPost, "/users", "", gin.H{
		"email": email, "password": "secret123", "first_name": "Test", "last_name": "User",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID string `json:"id"`
	}
	s.data(env, &user)
	return user.ID, s.login(email, "secret123")
}

func (s *APISuite) createCity() string {
	w, env := s.do(http.MethodPost, "/cities", s.admin, gin.H{"name": "Lyon", "country_code": "FR"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var city struct {
		ID string `json:"id"`
	}
	s.data(env, &city)
	return city.ID
}

func (s *APISuite) createPlace(token, cityID string) string {
	w, env := s.do(http.MethodPost, "/places", token, gin.H{
		"name": "Studio", "city_id": cityID, "price_per_night": 80, "max_guests": 2,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var place struct {
		ID string `json:"id"`
	}
	s.data(env, &place)
	return place.ID
}

func (s *APISuite) TestDuplicateEmailIsBadRequest() {
	s.register("dup@example.com")

	w, env := s.do(http.MethodPost, "/users", "", gin.H{"email": "DUP@example.com", "password": "secret123"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("error", env.Status)
	s.Equal(utils.ErrEmailAlreadyExists.Error(), env.Message)
}

func (s *APISuite) TestRegisterValidatesBody() {
	w, _ := s.do(http.MethodPost, "/users", "", gin.H{"email": "not-an-email", "password": "secret123"})
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/users/login", "", gin.H{"email": "a@example.com"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestLogin() {
	s.register("guest@example.com")

	w, env := s.do(http.MethodPost, "/users/login", "", gin.H{"email": "guest@example.com", "password": "nope"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(http.StatusUnauthorized, env.Code)

	s.NotEmpty(s.login("guest@example.com", "secret123"))
}

func (s *APISuite) TestProtectedRoutesNeedValidToken() {
	w, _ := s.do(http.MethodGet, "/users/me", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/users/me", "garbage", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	_, token := s.register("me@example.com")
	w, env := s.do(http.MethodGet, "/users/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
	}
	s.data(env, &me)
	s.Equal("me@example.com", me.Email)

	w, _ = s.do(http.MethodPost, "/users/logout", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/users/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Token is logged out", env.Message)
}

func (s *APISuite) TestAdminOnlyWrites() {
	_, token := s.register("user@example.com")

	w, _ := s.do(http.MethodPost, "/countries", token, gin.H{"code": "XK", "name": "Kosovo"})
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/countries", s.admin, gin.H{"code": "XK", "name": "Kosovo"})
	s.Equal(http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodPost, "/countries", s.admin, gin.H{"code": "xk", "name": "Again"})
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodGet, "/stats", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodGet, "/stats", s.admin, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestSeededCountriesAreListed() {
	w, env := s.do(http.MethodGet, "/countries/fr", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var country struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	s.data(env, &country)
	s.Equal("FR", country.Code)
	s.Equal("France", country.Name)

	w, _ = s.do(http.MethodGet, "/countries/ZZ", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestCityWithUnknownCountryIsBadRequest() {
	w, _ := s.do(http.MethodPost, "/cities", s.admin, gin.H{"name": "Atlantis", "country_code": "QQ"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestDeleteMissingPlaceIsNotFound() {
	w, env := s.do(http.MethodDelete, "/places/"+uuid.NewString(), s.admin, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(utils.ErrPlaceNotFound.Error(), env.Message)
}

func (s *APISuite) TestPlaceLifecycle() {
	hostID, host := s.register("host@example.com")
	_, guest := s.register("guest@example.com")
	cityID := s.createCity()
	placeID := s.createPlace(host, cityID)

	w, env := s.do(http.MethodGet, "/places/"+placeID, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var place struct {
		HostID string `json:"host_id"`
	}
	s.data(env, &place)
	s.Equal(hostID, place.HostID)

	w, _ = s.do(http.MethodPut, "/places/"+placeID, guest, gin.H{"name": "Mine now"})
	s.Equal(http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodPut, "/places/"+placeID, host, gin.H{"name": "Bigger studio"})
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, "/amenities", s.admin, gin.H{"name": "Pool"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var amenity struct {
		ID string `json:"id"`
	}
	s.data(env, &amenity)

	w, _ = s.do(http.MethodPost, "/places/"+placeID+"/amenities/"+amenity.ID, host, nil)
	s.Equal(http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/places/"+placeID+"/amenities/"+amenity.ID, host, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/places/"+placeID+"/reviews", host, gin.H{"comment": "great", "rating": 5})
	s.Equal(http.StatusBadRequest, w.Code)
	w, _ = s.do(http.MethodPost, "/places/"+placeID+"/reviews", guest, gin.H{"comment": "great", "rating": 9})
	s.Equal(http.StatusBadRequest, w.Code)
	w, _ = s.do(http.MethodPost, "/places/"+placeID+"/reviews", guest, gin.H{"comment": "great", "rating": 5})
	s.Equal(http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodDelete, "/cities/"+cityID, s.admin, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, "/places/"+placeID, host, nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Zero(w.Body.Len())

	w, env = s.do(http.MethodGet, "/reviews", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var reviews []json.RawMessage
	s.data(env, &reviews)
	s.Empty(reviews)
}

func (s *APISuite) TestResponsesCarryTraceID() {
	traceID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/amenities", nil)
	req.Header.Set(middleware.TraceHeader, traceID)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(traceID, w.Header().Get(middleware.TraceHeader))

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	s.Equal(traceID, env.TraceID)
}

func (s *APISuite) TestBlankAmenityNameIsBadRequest() {
	w, _ := s.do(http.MethodPost, "/amenities", s.admin, gin.H{"name": "   "})
	s.Equal(http.StatusBadRequest, w.Code)
}
