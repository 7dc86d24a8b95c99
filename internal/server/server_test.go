package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"brightline/internal/config"
	"brightline/internal/database"
	"brightline/internal/domain"
	"brightline/internal/middleware"
	"brightline/internal/notification"
	"brightline/internal/pkg/jwt"
	fileupload "brightline/internal/pkg/upload"
	"brightline/internal/realtime"
	"brightline/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mailbox struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (m *mailbox) Notify(_ context.Context, msg notification.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	tokens *jwt.Service
	mail   *mailbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{
			Env:         "test",
			FrontendURL: "http://localhost:3000",
			AdminEmail:  "admin@brightline.test",
		},
		RateLimit: config.RateLimitConfig{Window: time.Minute, Max: 1000},
	}
	store := storage.NewLocal(t.TempDir(), "/uploads")
	tokens := jwt.New("test-secret", time.Hour, jwt.NewMemoryDenylist())
	hub := realtime.NewHub()
	t.Cleanup(hub.Close)
	mail := &mailbox{}

	engine := NewRouter(Deps{
		Config:    cfg,
		DB:        db,
		Tokens:    tokens,
		Store:     store,
		Uploads:   fileupload.NewRouter(store, 0),
		Notifier:  mail,
		Hub:       hub,
		RateStore: middleware.NewMemoryRateStore(),
	})
	return &testServer{engine: engine, db: db, tokens: tokens, mail: mail}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "OK", data["status"])
	assert.Equal(t, "connected", data["database"])
	assert.Contains(t, data, "uptime")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "errors")
	assert.NotContains(t, body, "data")
}

func TestContact_InvalidEmailCreatesNothing(t *testing.T) {
	s := newTestServer(t)

	payload := map[string]any{
		"firstName": "A",
		"lastName":  "B",
		"email":     "bad-email",
		"subject":   "S",
		"message":   "M",
	}
	code, body := s.do(t, http.MethodPost, "/api/contact", payload, "")
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])

	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	entry := errs[0].(map[string]any)
	assert.Equal(t, "email", entry["field"])
	assert.Contains(t, entry["message"], "valid email")

	var n int64
	require.NoError(t, s.db.Model(&domain.Contact{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Empty(t, s.mail.sent)
}

func TestContact_ValidSubmission(t *testing.T) {
	s := newTestServer(t)

	payload := map[string]any{
		"firstName": "A",
		"lastName":  "B",
		"email":     "a.b@example.com",
		"subject":   "S",
		"message":   "M",
	}
	code, body := s.do(t, http.MethodPost, "/api/contact", payload, "")
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "new", body["data"].(map[string]any)["status"])
	assert.Len(t, s.mail.sent, 2)
}

func TestBlog_SecondPageOfThirteen(t *testing.T) {
	s := newTestServer(t)

	author := &domain.User{FirstName: "Ed", Email: "ed@brightline.test", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, s.db.Create(author).Error)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		published := base.Add(time.Duration(i) * time.Hour)
		post := &domain.Blog{
			Title:       fmt.Sprintf("Wiring Tip %02d", i),
			Excerpt:     "Short excerpt",
			Content:     "Body text for the post",
			Category:    "maintenance",
			AuthorID:    author.ID,
			Status:      domain.BlogPublished,
			PublishedAt: &published,
		}
		require.NoError(t, s.db.Create(post).Error)
	}

	code, body := s.do(t, http.MethodGet, "/api/blog?page=2", nil, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Len(t, body["data"], 6)

	p := body["pagination"].(map[string]any)
	assert.EqualValues(t, 2, p["currentPage"])
	assert.EqualValues(t, 3, p["totalPages"])
	assert.EqualValues(t, 13, p["totalItems"])
	assert.EqualValues(t, 6, p["itemsPerPage"])
	assert.Equal(t, true, p["hasNextPage"])
	assert.Equal(t, true, p["hasPrevPage"])
}

func (s *testServer) account(t *testing.T, email string, role domain.UserRole) (*domain.User, string) {
	t.Helper()
	u := &domain.User{FirstName: "Test", LastName: "Account", Email: email, Role: role, IsActive: true}
	require.NoError(t, s.db.Create(u).Error)
	token, err := s.tokens.GenerateToken(u.ID, string(role))
	require.NoError(t, err)
	return u, token
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/contact", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	_, member := s.account(t, "member@brightline.test", domain.RoleUser)
	code, _ = s.do(t, http.MethodGet, "/api/contact", nil, member)
	assert.Equal(t, http.StatusForbidden, code)

	_, admin := s.account(t, "boss@brightline.test", domain.RoleAdmin)
	code, body := s.do(t, http.MethodGet, "/api/contact", nil, admin)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "pagination")
}

func TestAdminRoutes_RoleComesFromStoredAccount(t *testing.T) {
	s := newTestServer(t)
	first, firstToken := s.account(t, "first@brightline.test", domain.RoleAdmin)
	second, secondToken := s.account(t, "second@brightline.test", domain.RoleAdmin)

	code, body := s.do(t, http.MethodPut, fmt.Sprintf("/api/user/%d", second.ID),
		map[string]any{"role": "user"}, firstToken)
	require.Equal(t, http.StatusOK, code, body["message"])

	code, _ = s.do(t, http.MethodGet, "/api/user", nil, secondToken)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/user/%d", first.ID), nil, secondToken)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/user/%d", second.ID),
		map[string]any{"isActive": false}, firstToken)
	require.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodGet, "/api/user/dashboard", nil, secondToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Account is inactive or no longer exists", body["message"])

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/user/%d", second.ID), nil, firstToken)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, "/api/auth/me", nil, secondToken)
	assert.Equal(t, http.StatusUnauthorized, code)
}
