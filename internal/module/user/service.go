package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lighter/common/internal/shared/logger"
	"github.com/lighter/common/internal/shared/metrics"
)

// Service provides user management operations.
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, m *metrics.Metrics, zl *zap.Logger) *Service {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		metrics: m,
		log:     zl.Named("user"),
	}
}

// Create registers a new user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	req.Normalize()
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.ZapWithRequest(ctx, s.log).Info("user created", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of users shaped by req.
func (s *Service) List(ctx context.Context, req *UserPaginationRequest) (*UserPaginationResponse, error) {
	q := req.Query()

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	s.metrics.RecordPage(entityName, req.Sort().String(), req.Order().String(), q.Limit)
	logger.ZapWithRequest(ctx, s.log).Debug("users listed",
		zap.Int("page", req.Page()),
		zap.Int("limit", q.Limit),
		zap.String("sort", q.Column),
		zap.Stringer("order", q.Direction),
		zap.Bool("search", q.HasSearch()),
		zap.Int64("total", total),
	)

	return UserPaginationResponseFrom(req, total, rows), nil
}
