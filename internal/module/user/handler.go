package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lighter/common/internal/pagination"
	apperrors "github.com/lighter/common/internal/shared/errors"
	"github.com/lighter/common/internal/shared/metrics"
	"github.com/lighter/common/internal/shared/response"
)

// Handler handles HTTP requests for users.
type Handler struct {
	service *Service
	metrics *metrics.Metrics
}

// NewHandler creates a new user handler.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

// RegisterRoutes registers the user routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
	}
}

// List handles paginated user listings.
//
//	@Summary		List users
//	@Description	List users one page at a time, optionally filtered by a search term on name and email
//	@Tags			User
//	@Produce		json
//	@Param			request	query		UserPaginationRequest	false	"Pagination parameters"
//	@Success		200		{object}	UserPaginationResponse
//	@Failure		400		{object}	apperrors.ErrorResponse
//	@Failure		500		{object}	apperrors.ErrorResponse
//	@Router			/users [get]
func (h *Handler) List(c *gin.Context) {
	var req UserPaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, page)
}

// Get handles fetching a single user.
//
//	@Summary		Get user
//	@Description	Get a user by ID
//	@Tags			User
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	UserResponse
//	@Failure		400	{object}	apperrors.ErrorResponse
//	@Failure		404	{object}	apperrors.ErrorResponse
//	@Router			/users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, ErrInvalidID)
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, user.ToResponse())
}

// Create handles user creation.
//
//	@Summary		Create user
//	@Description	Create a new user with name, email and password
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"User to create"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	apperrors.ErrorResponse
//	@Failure		409		{object}	apperrors.ErrorResponse
//	@Router			/users [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, user.ToResponse())
}

// bindError reports a query that could not be bound. Rejected sort or order
// tokens are counted and echoed back.
func (h *Handler) bindError(c *gin.Context, err error) {
	var verr *pagination.ValidationError
	if errors.As(err, &verr) {
		h.metrics.RecordRejection(entityName, verr.Param)
		response.Error(c, err)
		return
	}
	response.BadRequest(c, err.Error())
}

// --- Helper functions ---

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "user")
	case errors.Is(err, ErrInvalidID):
		response.BadRequest(c, ErrInvalidID.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, apperrors.Conflict(err.Error()))
	case errors.Is(err, ErrPasswordTooShort):
		response.Error(c, apperrors.ValidationError(err.Error()))
	default:
		response.InternalError(c, err)
	}
}
