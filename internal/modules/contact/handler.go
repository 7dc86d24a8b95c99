package contact

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
	g := api.Group("/contact")
	g.POST("", validation.Body(createRules), h.Create)

	admin := g.Group("", guards.Admin()...)
	{
		admin.GET("", validation.Query(listRules), h.List)
		admin.GET("/stats", h.Stats)
		admin.GET("/:id", validation.Params(validation.IDParam), h.Get)
		admin.PUT("/:id", validation.Params(validation.IDParam), validation.Body(updateRules), h.Update)
		admin.PUT("/:id/assign", validation.Params(validation.IDParam), validation.Body(assignRules), h.Assign)
		admin.POST("/:id/notes", validation.Params(validation.IDParam), validation.Body(noteRules), h.AddNote)
		admin.PUT("/:id/read", validation.Params(validation.IDParam), h.MarkRead)
		admin.DELETE("/:id", validation.Params(validation.IDParam), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	origin := Origin{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	msg, err := h.service.Create(c.Request.Context(), req, origin)
	if err != nil {
		utils.InternalError(c, err, "Failed to send message")
		return
	}
	response.Created(c, msg, "Thank you for contacting us. We will get back to you soon.")
}

func (h *Handler) List(c *gin.Context) {
	p := utils.ListParams(c, DefaultLimit)
	f := repository.ContactFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		IsRead:   utils.QueryBool(c, "isRead"),
		From:     utils.QueryTime(c, "startDate"),
		To:       utils.QueryEndTime(c, "endDate"),
		Search:   c.Query("search"),
	}
	out, total, err := h.service.List(c.Request.Context(), f, p)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch contact messages")
		return
	}
	response.Paginated(c, out, p.Page, p.Limit, total, "Contact messages retrieved successfully")
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	msg, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch contact message")
		return
	}
	response.Success(c, msg, "Contact message retrieved successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateContactRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	msg, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update contact message")
		return
	}
	response.Success(c, msg, "Contact message updated successfully")
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	msg, err := h.service.Assign(c.Request.Context(), id, req.AssignedTo)
	if err != nil {
		h.fail(c, err, "Failed to assign contact message")
		return
	}
	response.Success(c, msg, "Contact message assigned successfully")
}

func (h *Handler) AddNote(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req NoteRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	msg, err := h.service.AddNote(c.Request.Context(), id, middleware.UserID(c), req.Content)
	if err != nil {
		h.fail(c, err, "Failed to add note")
		return
	}
	response.Success(c, msg, "Note added successfully")
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	msg, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to mark message as read")
		return
	}
	response.Success(c, msg, "Message marked as read")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete contact message")
		return
	}
	response.Success(c, nil, "Contact message deleted successfully")
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch contact statistics")
		return
	}
	response.Success(c, stats, "Contact statistics retrieved successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrContactNotFound):
		response.NotFound(c, "Contact message not found")
	case errors.Is(err, ErrInvalidAssignee):
		response.BadRequest(c, "Assignee must be an active admin or technician", nil)
	default:
		utils.InternalError(c, err, fallback)
	}
}
