package services

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"brightline/internal/domain"
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
	g := api.Group("/services")
	{
		g.GET("", guards.Optional, validation.Query(listRules), h.List)
		g.GET("/featured", h.Featured)
		g.GET("/categories", h.Categories)
		g.GET("/:slug", guards.Optional, h.Get)
	}

	admin := g.Group("", guards.Admin()...)
	{
		admin.POST("", validation.Body(createRules), h.Create)
		admin.PUT("/:id", validation.Params(validation.IDParam), validation.Body(updateRules), h.Update)
		admin.PATCH("/:id/toggle", validation.Params(validation.IDParam), h.Toggle)
		admin.DELETE("/:id", validation.Params(validation.IDParam), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	f := repository.ServiceFilter{
		Category: c.Query("category"),
		Featured: utils.QueryBool(c, "featured"),
		Search:   c.Query("search"),
	}
	out, total, err := h.service.List(c.Request.Context(), f, p, domain.IsAdmin(middleware.Role(c)))
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch services")
		return
	}
	response.Paginated(c, out, p.Page, p.Limit, total, "Services retrieved successfully")
}

func (h *Handler) Featured(c *gin.Context) {
	out, err := h.service.Featured(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch featured services")
		return
	}
	response.Success(c, out, "Featured services retrieved successfully")
}

func (h *Handler) Categories(c *gin.Context) {
	out, err := h.service.Categories(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch categories")
		return
	}
	response.Success(c, out, "Categories retrieved successfully")
}

func (h *Handler) Get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("slug"), domain.IsAdmin(middleware.Role(c)))
	if err != nil {
		h.fail(c, err, "Failed to fetch service")
		return
	}
	response.Success(c, svc, "Service retrieved successfully")
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	svc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create service")
		return
	}
	response.Created(c, svc, "Service created successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	svc, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update service")
		return
	}
	response.Success(c, svc, "Service updated successfully")
}

func (h *Handler) Toggle(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	svc, err := h.service.Toggle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to toggle service")
		return
	}
	msg := "Service deactivated successfully"
	if svc.IsActive {
		msg = "Service activated successfully"
	}
	response.Success(c, svc, msg)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete service")
		return
	}
	response.Success(c, nil, "Service deleted successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrServiceNotFound) {
		response.NotFound(c, "Service not found")
		return
	}
	utils.InternalError(c, err, fallback)
}
