package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"hbnb/internal/api/controllers"
	"hbnb/internal/config"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/middleware"
	"hbnb/pkg/utils"
)

type Handlers struct {
	Users     *controllers.UserController
	Countries *controllers.CountryController
	Cities    *controllers.CityController
	Amenities *controllers.AmenityController
	Places    *controllers.PlaceController
	Reviews   *controllers.ReviewController
	Dashboard *controllers.DashboardController
}

func NewRouter(cfg *config.Config, handlers Handlers, tokens *utils.TokenManager, revoked mem.RevokedTokenStore) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	if cfg.Debug {
		r.Use(middleware.ErrorLogMiddleware)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.TraceHeader},
		ExposeHeaders: []string{"Content-Length", middleware.TraceHeader},
		MaxAge:        12 * time.Hour,
	}))
	if !cfg.Debug {
		r.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	RegisterRoutes(r, handlers, tokens, revoked)

	return r
}

func RegisterRoutes(r *gin.Engine, h Handlers, tokens *utils.TokenManager, revoked mem.RevokedTokenStore) {
	auth := middleware.JWTAuthMiddleware(tokens, revoked)
	admin := middleware.AdminMiddleware()

	users := r.Group("/users")
	users.GET("", h.Users.ListUsers)
	users.POST("", middleware.OptionalJWTMiddleware(tokens, revoked), h.Users.Register)
	users.POST("/login", h.Users.Login)
	users.POST("/logout", auth, h.Users.Logout)
	users.GET("/me", auth, h.Users.Me)
	users.GET("/:id", h.Users.GetUser)
	users.GET("/:id/reviews", h.Users.ListUserReviews)
	users.PUT("/:id", auth, h.Users.UpdateUser)
	users.DELETE("/:id", auth, h.Users.DeleteUser)

	countries := r.Group("/countries")
	countries.GET("", h.Countries.ListCountries)
	countries.GET("/:code", h.Countries.GetCountry)
	countries.GET("/:code/cities", h.Countries.ListCountryCities)
	countries.POST("", auth, admin, h.Countries.CreateCountry)
	countries.PUT("/:code", auth, admin, h.Countries.UpdateCountry)
	countries.DELETE("/:code", auth, admin, h.Countries.DeleteCountry)

	cities := r.Group("/cities")
	cities.GET("", h.Cities.ListCities)
	cities.GET("/:id", h.Cities.GetCity)
	cities.GET("/:id/places", h.Cities.ListCityPlaces)
	cities.POST("", auth, admin, h.Cities.CreateCity)
	cities.PUT("/:id", auth, admin, h.Cities.UpdateCity)
	cities.DELETE("/:id", auth, admin, h.Cities.DeleteCity)

	amenities := r.Group("/amenities")
	amenities.GET("", h.Amenities.ListAmenities)
	amenities.GET("/:id", h.Amenities.GetAmenity)
	amenities.POST("", auth, admin, h.Amenities.CreateAmenity)
	amenities.PUT("/:id", auth, admin, h.Amenities.UpdateAmenity)
	amenities.DELETE("/:id", auth, admin, h.Amenities.DeleteAmenity)

	places := r.Group("/places")
	places.GET("", h.Places.ListPlaces)
	places.GET("/:id", h.Places.GetPlace)
	places.POST("", auth, h.Places.CreatePlace)
	places.PUT("/:id", auth, h.Places.UpdatePlace)
	places.DELETE("/:id", auth, h.Places.DeletePlace)
	places.GET("/:id/amenities", h.Places.ListPlaceAmenities)
	places.POST("/:id/amenities/:amenity_id", auth, h.Places.AddPlaceAmenity)
	places.DELETE("/:id/amenities/:amenity_id", auth, h.Places.RemovePlaceAmenity)
	places.GET("/:id/reviews", h.Places.ListPlaceReviews)
	places.POST("/:id/reviews", auth, h.Places.CreatePlaceReview)

	reviews := r.Group("/reviews")
	reviews.GET("", h.Reviews.ListReviews)
	reviews.GET("/:id", h.Reviews.GetReview)
	reviews.PUT("/:id", auth, h.Reviews.UpdateReview)
	reviews.DELETE("/:id", auth, h.Reviews.DeleteReview)

	r.GET("/stats", auth, admin, h.Dashboard.GetDashboard)
}
