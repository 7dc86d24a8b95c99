package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"brightline/internal/middleware"
	"brightline/internal/pkg/response"
	"brightline/internal/pkg/utils"
	"brightline/internal/pkg/validation"
	"brightline/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	g := api.Group("/user")
	g.GET("/dashboard", guards.Required, h.Dashboard)

	admin := g.Group("", guards.Admin()...)
	{
		admin.GET("", validation.Query(listRules), h.List)
		admin.GET("/technicians", h.Technicians)
		admin.GET("/:id", validation.Params(validation.IDParam), h.Get)
		admin.PUT("/:id", validation.Params(validation.IDParam), validation.Body(updateRules), h.Update)
		admin.DELETE("/:id", validation.Params(validation.IDParam), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	f := repository.UserFilter{
		Role:     c.Query("role"),
		IsActive: utils.QueryBool(c, "isActive"),
		Search:   c.Query("search"),
	}
	out, total, err := h.service.List(c.Request.Context(), f, p)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch users")
		return
	}
	response.Paginated(c, out, p.Page, p.Limit, total, "Users retrieved successfully")
}

func (h *Handler) Technicians(c *gin.Context) {
	out, err := h.service.Technicians(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch technicians")
		return
	}
	response.Success(c, out, "Technicians retrieved successfully")
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch user")
		return
	}
	response.Success(c, u, "User retrieved successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	u, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update user")
		return
	}
	response.Success(c, u, "User updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.fail(c, err, "Failed to delete user")
		return
	}
	response.Success(c, nil, "User deleted successfully")
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context(), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		h.fail(c, err, "Failed to load dashboard")
		return
	}
	response.Success(c, d, "Dashboard retrieved successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, ErrSelfAction):
		response.BadRequest(c, "You cannot remove your own admin access", nil)
	default:
		utils.InternalError(c, err, fallback)
	}
}
