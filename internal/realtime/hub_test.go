package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightline/internal/pkg/jwt"
)

func newServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	tokens := jwt.New("secret", time.Hour, nil)
	engine := gin.New()
	engine.GET("/api/ws/admin", NewHandler(hub, tokens, nil).AdminFeed)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, tokens, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/admin?token=" + token
}

func TestAdminFeed_ReceivesEvents(t *testing.T) {
	hub, tokens, srv := newServer(t)
	token, err := tokens.GenerateToken(1, "admin")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(EventContactCreated, map[string]any{"id": 5})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, EventContactCreated, event.Type)
	assert.False(t, event.Timestamp.IsZero())
}

func TestAdminFeed_RejectsNonAdmins(t *testing.T) {
	_, tokens, srv := newServer(t)
	token, err := tokens.GenerateToken(2, "user")
	require.NoError(t, err)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublish_WithoutClients(t *testing.T) {
	hub := NewHub()
	hub.Publish(EventBookingCreated, nil)
	assert.Zero(t, hub.Count())
}
