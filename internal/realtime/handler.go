package realtime

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"brightline/internal/domain"
	"brightline/internal/pkg/jwt"
	"brightline/internal/pkg/logger"
	"brightline/internal/pkg/response"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

type Handler struct {
	hub      *Hub
	tokens   TokenValidator
	upgrader websocket.Upgrader
}

// NewHandler accepts connections from the listed origins. No origins means
// any origin is accepted.
func NewHandler(hub *Hub, tokens TokenValidator, origins []string) *Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// AdminFeed serves GET /api/ws/admin?token=JWT. Browsers cannot set headers
// on websocket requests, so the token travels in the query string.
func (h *Handler) AdminFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	claims, err := h.tokens.ValidateToken(c.Request.Context(), token)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token")
		return
	}
	if !domain.Allows(domain.AccessAdmin, claims.Role) {
		response.Forbidden(c, "Admin access required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WarnContext(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}
	logger.Info("admin feed connected", "user_id", claims.UserID)
	h.hub.serve(conn, claims.UserID)
	logger.Info("admin feed disconnected", "user_id", claims.UserID)
}
