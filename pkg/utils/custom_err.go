package utils

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCountryNotFound = errors.New("country not found")
	ErrCityNotFound    = errors.New("city not found")
	ErrPlaceNotFound   = errors.New("place not found")
	ErrAmenityNotFound = errors.New("amenity not found")
	ErrReviewNotFound  = errors.New("review not found")

	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrCountryAlreadyExists = errors.New("country code already exists")
	ErrAmenityAlreadyExists = errors.New("amenity already exists")
	ErrAmenityAlreadyLinked = errors.New("amenity already linked to place")
	ErrAmenityNotLinked     = errors.New("amenity not linked to place")
	ErrAlreadyReviewed      = errors.New("place already reviewed by user")
	ErrOwnPlaceReview       = errors.New("hosts cannot review their own place")
	ErrInvalidReference     = errors.New("referenced entity not found")
	ErrStillReferenced      = errors.New("entity is still referenced")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrInvalidInput         = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrDatabaseError = errors.New("database error")
)
