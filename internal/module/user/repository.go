package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lighter/common/internal/pagination"
	"github.com/lighter/common/internal/shared/cache"
	"github.com/lighter/common/internal/shared/database"
	"github.com/lighter/common/internal/shared/metrics"
)

const (
	entityName = "user"
	primaryKey = "id"
)

// Repository defines the interface for user data access.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// List returns one window of users and the total number of users
	// matching q.Search.
	List(ctx context.Context, q pagination.Query) ([]*User, int64, error)
}

type repository struct {
	db      *gorm.DB
	counts  *cache.CountCache
	metrics *metrics.Metrics
}

// NewRepository creates a new user repository. counts and m may be nil.
func NewRepository(db *gorm.DB, counts *cache.CountCache, m *metrics.Metrics) Repository {
	return &repository{db: db, counts: counts, metrics: m}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(user).Error
	r.metrics.RecordDBQuery("create", time.Since(start))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	r.counts.InvalidateEntity(ctx, entityName)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	start := time.Now()
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	r.metrics.RecordDBQuery("get", time.Since(start))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) List(ctx context.Context, q pagination.Query) ([]*User, int64, error) {
	total, err := r.counts.Count(ctx, cache.Key(entityName, q.Search), func(ctx context.Context) (int64, error) {
		start := time.Now()
		var n int64
		err := r.filtered(ctx, q.Search).Count(&n).Error
		r.metrics.RecordDBQuery("count", time.Since(start))
		return n, err
	})
	if err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []*User{}, 0, nil
	}

	var users []*User
	start := time.Now()
	err = r.filtered(ctx, q.Search).Scopes(database.Paginate(q, primaryKey)).Find(&users).Error
	r.metrics.RecordDBQuery("list", time.Since(start))
	if err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []*User{}
	}
	return users, total, nil
}

func (r *repository) filtered(ctx context.Context, search string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&User{}).Scopes(database.Search(search, searchColumns...))
}
