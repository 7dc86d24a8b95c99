package blog

import (
	"errors"
	"strings"

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
	g := api.Group("/blog")
	{
		g.GET("", validation.Query(listRules), h.List)
		g.GET("/featured", h.Featured)
		g.GET("/categories", h.Categories)
		g.GET("/category/:category", validation.Query(validation.Pagination), h.ByCategory)
		g.GET("/search", validation.Query(searchRules), h.Search)
		g.GET("/:slug", guards.Optional, h.Get)
	}

	members := g.Group("", guards.Required)
	{
		members.POST("/:id/like", validation.Params(validation.IDParam), h.Like)
		members.POST("/:id/comment", validation.Params(validation.IDParam), validation.Body(commentRules), h.Comment)
	}

	admin := g.Group("", guards.Admin()...)
	{
		admin.GET("/admin/all", validation.Query(listRules.Extend("blog-admin-list",
			validation.Field("status", validation.Enum(domain.BlogStatuses, "Invalid status")),
		)), h.AdminList)
		admin.POST("", validation.Body(createRules), h.Create)
		admin.PUT("/:id", validation.Params(validation.IDParam), validation.Body(updateRules), h.Update)
		admin.DELETE("/:id", validation.Params(validation.IDParam), h.Delete)
	}
}

func filterFromQuery(c *gin.Context) repository.BlogFilter {
	return repository.BlogFilter{
		Category: c.Query("category"),
		Tag:      strings.ToLower(strings.TrimSpace(c.Query("tag"))),
		Search:   c.Query("search"),
		Featured: utils.QueryBool(c, "featured"),
	}
}

func (h *Handler) List(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	blogs, total, err := h.service.List(c.Request.Context(), filterFromQuery(c), p, false)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch blogs")
		return
	}
	response.Paginated(c, blogs, p.Page, p.Limit, total, "Blogs retrieved successfully")
}

func (h *Handler) AdminList(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	f := filterFromQuery(c)
	f.Status = c.Query("status")
	blogs, total, err := h.service.List(c.Request.Context(), f, p, true)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch blogs")
		return
	}
	response.Paginated(c, blogs, p.Page, p.Limit, total, "Blogs retrieved successfully")
}

func (h *Handler) Featured(c *gin.Context) {
	blogs, err := h.service.Featured(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch featured blogs")
		return
	}
	response.Success(c, blogs, "Featured blogs retrieved successfully")
}

func (h *Handler) Categories(c *gin.Context) {
	counts, err := h.service.Categories(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch categories")
		return
	}
	response.Success(c, counts, "Categories retrieved successfully")
}

func (h *Handler) ByCategory(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	blogs, total, err := h.service.ByCategory(c.Request.Context(), c.Param("category"), p)
	if err != nil {
		h.fail(c, err, "Failed to fetch blogs")
		return
	}
	response.Paginated(c, blogs, p.Page, p.Limit, total, "Blogs retrieved successfully")
}

func (h *Handler) Search(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	f := repository.BlogFilter{Search: c.Query("q")}
	blogs, total, err := h.service.List(c.Request.Context(), f, p, false)
	if err != nil {
		utils.InternalError(c, err, "Search failed")
		return
	}
	response.Paginated(c, blogs, p.Page, p.Limit, total, "Search results retrieved successfully")
}

func (h *Handler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("slug"), middleware.UserID(c), domain.IsAdmin(middleware.Role(c)))
	if err != nil {
		h.fail(c, err, "Failed to fetch blog")
		return
	}
	response.Success(c, detail, "Blog retrieved successfully")
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err, "Failed to create blog")
		return
	}
	response.Created(c, b, "Blog created successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateBlogRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update blog")
		return
	}
	response.Success(c, b, "Blog updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete blog")
		return
	}
	response.Success(c, nil, "Blog deleted successfully")
}

func (h *Handler) Like(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.ToggleLike(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.fail(c, err, "Failed to update like")
		return
	}
	msg := "Blog unliked"
	if res.Liked {
		msg = "Blog liked"
	}
	response.Success(c, res, msg)
}

func (h *Handler) Comment(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), id, middleware.UserID(c), req.Content)
	if err != nil {
		h.fail(c, err, "Failed to add comment")
		return
	}
	response.Created(c, comment, "Comment added successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBlogNotFound):
		response.NotFound(c, "Blog not found")
	case errors.Is(err, ErrInvalidCategory):
		response.BadRequest(c, "Invalid category", nil)
	case errors.Is(err, ErrNotPublished):
		response.BadRequest(c, "Blog is not published", nil)
	default:
		utils.InternalError(c, err, fallback)
	}
}
