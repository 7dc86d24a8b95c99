package booking

import (
	"errors"
	"strconv"

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
	g := api.Group("/booking")
	g.POST("", guards.Optional, validation.Body(createRules), h.Create)

	members := g.Group("", guards.Required)
	{
		members.GET("", validation.Query(listRules), h.List)
		members.GET("/:id", validation.Params(validation.IDParam), h.Get)
		members.PUT("/:id/start", validation.Params(validation.IDParam), middleware.RequireAccess(domain.AccessTechnician), h.Start)
		members.PUT("/:id/complete", validation.Params(validation.IDParam), middleware.RequireAccess(domain.AccessTechnician), validation.Body(completeRules), h.Complete)
		members.PUT("/:id/cancel", validation.Params(validation.IDParam), validation.Body(cancelRules), h.Cancel)
		members.PUT("/:id/reschedule", validation.Params(validation.IDParam), validation.Body(rescheduleRules), h.Reschedule)
	}

	admin := g.Group("", guards.Admin()...)
	{
		admin.GET("/stats", h.Stats)
		admin.PUT("/:id", validation.Params(validation.IDParam), validation.Body(updateRules), h.Update)
		admin.DELETE("/:id", validation.Params(validation.IDParam), h.Delete)
		admin.PUT("/:id/confirm", validation.Params(validation.IDParam), validation.Body(confirmRules), h.Confirm)
	}
}

func (h *Handler) actor(c *gin.Context) (Actor, bool) {
	actor, err := h.service.ResolveActor(c.Request.Context(), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		utils.InternalError(c, err, "Failed to resolve user")
		return Actor{}, false
	}
	return actor, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err, "Failed to create booking")
		return
	}
	response.Created(c, b, "Booking created successfully. We will contact you shortly to confirm.")
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	p := utils.ListParams(c, DefaultLimit)
	f := repository.BookingFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		From:     utils.QueryTime(c, "startDate"),
		To:       utils.QueryEndTime(c, "endDate"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("technicianId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.TechnicianID = &id
		}
	}

	out, total, err := h.service.List(c.Request.Context(), actor, f, p)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch bookings")
		return
	}
	response.Paginated(c, out, p.Page, p.Limit, total, "Bookings retrieved successfully")
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err, "Failed to fetch booking")
		return
	}
	response.Success(c, b, "Booking retrieved successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update booking")
		return
	}
	response.Success(c, b, "Booking updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete booking")
		return
	}
	response.Success(c, nil, "Booking deleted successfully")
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req ConfirmRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	b, err := h.service.Confirm(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to confirm booking")
		return
	}
	response.Success(c, b, "Booking confirmed successfully")
}

func (h *Handler) Start(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	b, err := h.service.Start(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err, "Failed to start booking")
		return
	}
	response.Success(c, b, "Booking started")
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req CompleteRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	b, err := h.service.Complete(c.Request.Context(), actor, id, req)
	if err != nil {
		h.fail(c, err, "Failed to complete booking")
		return
	}
	response.Success(c, b, "Booking completed successfully")
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	b, err := h.service.Cancel(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		h.fail(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, b, "Booking cancelled successfully")
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req RescheduleRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	b, err := h.service.Reschedule(c.Request.Context(), actor, id, req)
	if err != nil {
		h.fail(c, err, "Failed to reschedule booking")
		return
	}
	response.Success(c, b, "Booking rescheduled successfully")
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch booking statistics")
		return
	}
	response.Success(c, stats, "Booking statistics retrieved successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	var te *TransitionError
	switch {
	case errors.As(err, &te):
		response.BadRequest(c, te.Error(), nil)
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "Not authorized to access this booking")
	case errors.Is(err, ErrServiceUnavailable):
		response.BadRequest(c, "Selected service is not available", nil)
	case errors.Is(err, ErrPastDate):
		response.BadRequest(c, "Preferred date cannot be in the past", nil)
	case errors.Is(err, ErrInvalidDate):
		response.BadRequest(c, "Please provide a valid date", nil)
	case errors.Is(err, ErrInvalidTechnician):
		response.BadRequest(c, "Technician not found or inactive", nil)
	default:
		utils.InternalError(c, err, fallback)
	}
}
