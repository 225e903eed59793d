package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
	})
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

// TraceID returns the id set by the trace middleware, or "" outside of it.
func TraceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCountryNotFound),
		errors.Is(err, ErrCityNotFound),
		errors.Is(err, ErrPlaceNotFound),
		errors.Is(err, ErrAmenityNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrAmenityNotLinked):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrCountryAlreadyExists),
		errors.Is(err, ErrAmenityAlreadyExists),
		errors.Is(err, ErrAmenityAlreadyLinked),
		errors.Is(err, ErrAlreadyReviewed),
		errors.Is(err, ErrOwnPlaceReview),
		errors.Is(err, ErrInvalidReference),
		errors.Is(err, ErrStillReferenced),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Error().Err(err).Str("trace_id", TraceID(c)).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error().Err(err).Str("trace_id", TraceID(c)).Msg("unknown error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
