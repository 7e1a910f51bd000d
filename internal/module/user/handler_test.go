package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighter/common/internal/pagination"
	apperrors "github.com/lighter/common/internal/shared/errors"
	"github.com/lighter/common/internal/shared/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerFixture struct {
	router  *gin.Engine
	repo    *fakeRepository
	metrics *metrics.Metrics
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	repo := newFakeRepository()
	m := metrics.New("test", prometheus.NewRegistry())
	h := NewHandler(NewService(repo, m, nil), m)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return &handlerFixture{router: router, repo: repo, metrics: m}
}

func (f *handlerFixture) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorDetail {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestHandler_List(t *testing.T) {
	t.Run("second page", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.repo.total = 25
		f.repo.rows = makeUsers(10)

		w := f.do(http.MethodGet, "/api/v1/users?page=2&limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserPaginationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(25), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, int64(3), resp.Pages)
		assert.Len(t, resp.Data, 10)
		assert.NotContains(t, w.Body.String(), "hash")
		assert.Equal(t, 10, f.repo.lastQuery.Offset)
	})

	t.Run("sort order and search", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodGet, "/api/v1/users?sort=name&order=desc&search=ada", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, pagination.Query{
			Limit:     10,
			Column:    "name",
			Direction: pagination.Descending,
			Search:    "ada",
		}, f.repo.lastQuery)
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PaginationRequests.WithLabelValues("user", "name", "desc")))
	})

	t.Run("lenient sort token", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodGet, "/api/v1/users?sort=createdAt&order=DESC", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "created_at", f.repo.lastQuery.Column)
		assert.Equal(t, pagination.Descending, f.repo.lastQuery.Direction)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodGet, "/api/v1/users?limit=5000", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1000, f.repo.lastQuery.Limit)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodGet, "/api/v1/users?sort=invalid_field", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		detail := decodeError(t, w)
		assert.Equal(t, "BAD_REQUEST", detail.Code)
		assert.Contains(t, detail.Message, "invalid_field")
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PaginationRejections.WithLabelValues("user", "sort")))
	})

	t.Run("unknown direction", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodGet, "/api/v1/users?order=sideways", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "sideways")
	})

	t.Run("non numeric limit", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodGet, "/api/v1/users?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.repo.listErr = assert.AnError

		w := f.do(http.MethodGet, "/api/v1/users", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestHandler_Get(t *testing.T) {
	f := newHandlerFixture(t)
	user := &User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(t, f.repo.Create(t.Context(), user))

	t.Run("found", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/users/"+user.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "Ada", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/users/"+uuid.New().String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/users/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Create(t *testing.T) {
	body, err := json.Marshal(CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("created", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodPost, "/api/v1/users", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("conflict", func(t *testing.T) {
		f := newHandlerFixture(t)

		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/users", body).Code)
		w := f.do(http.MethodPost, "/api/v1/users", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.do(http.MethodPost, "/api/v1/users", []byte(`{"name":"Ada","email":"nope"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
