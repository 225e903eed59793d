package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serviceErrorStatus(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrPlaceNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: city 42", ErrInvalidReference), http.StatusBadRequest},
		{ErrEmailAlreadyExists, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrDatabaseError, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, body := serviceErrorStatus(t, tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "trace-1", body.TraceID)
	}
}

func TestHandleServiceErrorKeepsDetail(t *testing.T) {
	_, body := serviceErrorStatus(t, fmt.Errorf("%w: country XX", ErrInvalidReference))
	assert.Equal(t, "referenced entity not found: country XX", body.Message)

	_, body = serviceErrorStatus(t, fmt.Errorf("pq: %w", ErrDatabaseError))
	assert.Equal(t, "Internal server error", body.Message)
}

func TestRespondCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondCreated(c, gin.H{"id": "1"}, "created")

	assert.Equal(t, http.StatusCreated, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Empty(t, body.TraceID)
}
