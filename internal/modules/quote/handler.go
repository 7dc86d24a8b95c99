package quote

import (
	"context"
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
	g := api.Group("/quote")
	g.POST("", guards.Optional, validation.Body(createRules), h.Create)

	members := g.Group("", guards.Required)
	{
		members.GET("", validation.Query(listRules), h.List)
		members.GET("/:id", validation.Params(validation.IDParam), h.Get)
		members.PUT("/:id/accept", validation.Params(validation.IDParam), validation.Body(respondRules), h.Accept)
		members.PUT("/:id/reject", validation.Params(validation.IDParam), validation.Body(respondRules), h.Reject)
		members.PUT("/:id/counter-offer", validation.Params(validation.IDParam), validation.Body(counterRules), h.CounterOffer)
	}

	admin := g.Group("", guards.Admin()...)
	{
		admin.GET("/stats", h.Stats)
		admin.PUT("/:id", validation.Params(validation.IDParam), validation.Body(updateRules), h.Update)
		admin.DELETE("/:id", validation.Params(validation.IDParam), h.Delete)
		admin.PUT("/:id/send", validation.Params(validation.IDParam), validation.Body(sendRules), h.Send)
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
	var req CreateQuoteRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	q, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err, "Failed to submit quote request")
		return
	}
	response.Created(c, q, "Quote request submitted successfully. We will review it and get back to you.")
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	p := utils.ListParams(c, DefaultLimit)
	f := repository.QuoteFilter{
		Status:       c.Query("status"),
		PropertyType: c.Query("propertyType"),
		From:         utils.QueryTime(c, "startDate"),
		To:           utils.QueryEndTime(c, "endDate"),
		Search:       c.Query("search"),
	}
	if raw := c.Query("serviceId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.ServiceID = &id
		}
	}

	out, total, err := h.service.List(c.Request.Context(), actor, f, p)
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch quotes")
		return
	}
	response.Paginated(c, out, p.Page, p.Limit, total, "Quotes retrieved successfully")
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
	q, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err, "Failed to fetch quote")
		return
	}
	response.Success(c, q, "Quote retrieved successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateQuoteRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	q, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update quote")
		return
	}
	response.Success(c, q, "Quote updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete quote")
		return
	}
	response.Success(c, nil, "Quote deleted successfully")
}

func (h *Handler) Send(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req SendQuoteRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	q, err := h.service.Send(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to send quote")
		return
	}
	response.Success(c, q, "Quote sent to customer")
}

func (h *Handler) Accept(c *gin.Context) {
	h.respond(c, "accept", h.service.Accept, "Quote accepted successfully")
}

func (h *Handler) Reject(c *gin.Context) {
	h.respond(c, "reject", h.service.Reject, "Quote rejected")
}

type decision func(ctx context.Context, actor Actor, id int64, message string) (*domain.Quote, error)

func (h *Handler) respond(c *gin.Context, verb string, decide decision, message string) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req RespondRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	q, err := decide(c.Request.Context(), actor, id, req.Message)
	if err != nil {
		h.fail(c, err, "Failed to "+verb+" quote")
		return
	}
	response.Success(c, q, message)
}

func (h *Handler) CounterOffer(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req CounterOfferRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	q, err := h.service.CounterOffer(c.Request.Context(), actor, id, req)
	if err != nil {
		h.fail(c, err, "Failed to submit counter offer")
		return
	}
	response.Success(c, q, "Counter offer submitted")
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err, "Failed to fetch quote statistics")
		return
	}
	response.Success(c, stats, "Quote statistics retrieved successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrQuoteNotFound):
		response.NotFound(c, "Quote not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "Not authorized to access this quote")
	case errors.Is(err, ErrQuoteExpired):
		response.BadRequest(c, "Quote has expired", nil)
	case errors.Is(err, ErrNotAwaitingResponse):
		response.BadRequest(c, "Quote is not awaiting your response", nil)
	case errors.Is(err, ErrCannotSend):
		response.BadRequest(c, "Quote cannot be sent in its current status", nil)
	case errors.Is(err, ErrServiceNotFound):
		response.BadRequest(c, "Selected service does not exist", nil)
	case errors.Is(err, ErrInvalidDate):
		response.BadRequest(c, "Please provide a valid date", nil)
	default:
		utils.InternalError(c, err, fallback)
	}
}
