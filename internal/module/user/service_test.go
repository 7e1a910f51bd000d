package user

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lighter/common/internal/pagination"
)

// fakeRepository is an in-memory Repository that records the last query.
type fakeRepository struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*User
	total     int64
	rows      []*User
	lastQuery pagination.Query
	listErr   error
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uuid.UUID]*User)}
}

func (r *fakeRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepository) List(_ context.Context, q pagination.Query) ([]*User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = q
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	return r.rows, r.total, nil
}

func makeUsers(n int) []*User {
	users := make([]*User, n)
	for i := range users {
		users[i] = &User{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("user-%02d", i),
			Email:        fmt.Sprintf("user-%02d@example.com", i),
			PasswordHash: "hash",
		}
	}
	return users
}

func TestService_Create(t *testing.T) {
	t.Run("hashes password and normalizes email", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, nil, zap.NewNop())

		user, err := svc.Create(context.Background(), &CreateUserRequest{
			Name:     " Ada ",
			Email:    "Ada@Example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewService(newFakeRepository(), nil, nil)
		_, err := svc.Create(context.Background(), &CreateUserRequest{Name: "a", Email: "a@b.c", Password: "short"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepository(), nil, nil)
		req := CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "long enough"}

		_, err := svc.Create(context.Background(), &req)
		require.NoError(t, err)
		dup := req
		_, err = svc.Create(context.Background(), &dup)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestService_Get(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, nil)
	created, err := svc.Create(context.Background(), &CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "long enough"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_List(t *testing.T) {
	t.Run("second page of 25", func(t *testing.T) {
		repo := newFakeRepository()
		repo.total = 25
		repo.rows = makeUsers(10)
		svc := NewService(repo, nil, nil)

		page2 := 2
		limit := 10
		resp, err := svc.List(context.Background(), &UserPaginationRequest{PageParam: &page2, LimitParam: &limit})
		require.NoError(t, err)

		assert.Equal(t, pagination.Query{
			Offset:    10,
			Limit:     10,
			Column:    "created_at",
			Direction: pagination.Ascending,
		}, repo.lastQuery)
		assert.Equal(t, int64(25), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, int64(3), resp.Pages)
		assert.Len(t, resp.Data, 10)
	})

	t.Run("defaults", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo, nil, nil)

		resp, err := svc.List(context.Background(), &UserPaginationRequest{})
		require.NoError(t, err)

		assert.Equal(t, 0, repo.lastQuery.Offset)
		assert.Equal(t, 10, repo.lastQuery.Limit)
		assert.Equal(t, "created_at", repo.lastQuery.Column)
		assert.Equal(t, int64(0), resp.Pages)
		assert.NotNil(t, resp.Data)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newFakeRepository()
		repo.listErr = assert.AnError
		svc := NewService(repo, nil, nil)

		_, err := svc.List(context.Background(), &UserPaginationRequest{})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
