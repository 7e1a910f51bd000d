package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighter/common/internal/pagination"
	apperrors "github.com/lighter/common/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestError(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		w := run(func(c *gin.Context) { Error(c, apperrors.Conflict("email taken")) })
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decode(t, w).Error.Code)
	})

	t.Run("pagination validation error", func(t *testing.T) {
		w := run(func(c *gin.Context) {
			Error(c, &pagination.ValidationError{Param: "sort", Token: "invalid_field"})
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
		assert.Contains(t, body.Error.Message, "invalid_field")
	})

	t.Run("unknown error hides cause", func(t *testing.T) {
		w := run(func(c *gin.Context) { Error(c, errors.New("pq: connection reset")) })
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := run(func(c *gin.Context) { Error(c, nil) })
		assert.Empty(t, w.Body.String())
	})
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, run(func(c *gin.Context) { BadRequest(c, "nope") }).Code)
	assert.Equal(t, http.StatusNotFound, run(func(c *gin.Context) { NotFound(c, "user") }).Code)
	assert.Equal(t, http.StatusInternalServerError, run(func(c *gin.Context) { InternalError(c, errors.New("x")) }).Code)
	assert.Equal(t, http.StatusCreated, run(func(c *gin.Context) { Created(c, gin.H{"id": 1}) }).Code)
	assert.Equal(t, http.StatusOK, run(func(c *gin.Context) { OK(c, gin.H{}) }).Code)
}
