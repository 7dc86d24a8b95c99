package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightline/internal/database"
	"brightline/internal/domain"
	"brightline/internal/middleware"
	fileupload "brightline/internal/pkg/upload"
	"brightline/internal/repository"
	"brightline/internal/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	engine *gin.Engine
	dir    string
	users  *repository.UserRepository
	user   *domain.User
}

// asCaller stands in for token validation.
func asCaller(id int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("role", role)
		c.Next()
	}
}

func setup(t *testing.T, role string) *env {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	users := repository.NewUserRepository(db)
	u := &domain.User{FirstName: "Rae", Email: "rae@example.com", Role: domain.UserRole(role), IsActive: true}
	require.NoError(t, users.Create(context.Background(), u))

	dir := t.TempDir()
	router := fileupload.NewRouter(storage.NewLocal(dir, "/uploads"), 0)
	require.NoError(t, router.EnsureDirs(context.Background()))

	caller := asCaller(u.ID, role)
	guards := middleware.Guards{Required: caller, Optional: caller}

	engine := gin.New()
	NewHandler(NewService(users, router), router).RegisterRoutes(engine.Group("/api"), guards)
	return &env{engine: engine, dir: dir, users: users, user: u}
}

func multipartBody(t *testing.T, field string, count int, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i := 0; i < count; i++ {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="photo-%d.png"`, field, i))
		h.Set("Content-Type", "image/png")
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (e *env) post(t *testing.T, path, field string, count int, data []byte) (int, map[string]any) {
	t.Helper()
	body, contentType := multipartBody(t, field, count, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func (e *env) files(t *testing.T, category string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.dir, category))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestAvatar_ReplacesPreviousFile(t *testing.T) {
	e := setup(t, "user")

	code, body := e.post(t, "/api/upload/avatar", "avatar", 1, pngBytes)
	require.Equal(t, http.StatusOK, code, body)
	data := body["data"].(map[string]any)
	firstURL := data["url"].(string)
	assert.Regexp(t, `^/uploads/avatars/photo-0-\d+-\d{9}\.png$`, firstURL)
	assert.NotEmpty(t, data["filename"])
	require.Len(t, e.files(t, "avatars"), 1)

	code, body = e.post(t, "/api/upload/avatar", "avatar", 1, pngBytes)
	require.Equal(t, http.StatusOK, code, body)
	secondURL := body["data"].(map[string]any)["url"].(string)
	assert.NotEqual(t, firstURL, secondURL)

	remaining := e.files(t, "avatars")
	require.Len(t, remaining, 1)
	assert.Equal(t, filepath.Base(secondURL), remaining[0])

	u, err := e.users.GetByID(context.Background(), e.user.ID)
	require.NoError(t, err)
	assert.Equal(t, secondURL, u.Avatar)
}

func TestAvatar_TooLarge(t *testing.T) {
	e := setup(t, "user")

	big := append(append([]byte{}, pngBytes...), make([]byte, 6<<20)...)
	code, body := e.post(t, "/api/upload/avatar", "avatar", 1, big)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "File too large. Maximum size is 5MB.", body["message"])
	assert.Empty(t, e.files(t, "avatars"))
}

func TestAttachments_QuotaWritesNothing(t *testing.T) {
	e := setup(t, "user")

	code, body := e.post(t, "/api/upload/attachments", "attachments", 6, pngBytes)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["message"], "Too many files")
	assert.Empty(t, e.files(t, "attachments"))

	code, body = e.post(t, "/api/upload/attachments", "attachments", 2, pngBytes)
	require.Equal(t, http.StatusOK, code, body)
	assert.Len(t, body["data"], 2)
}

func TestDelete(t *testing.T) {
	e := setup(t, "admin")

	code, body := e.post(t, "/api/upload/blog-image", "featuredImage", 1, pngBytes)
	require.Equal(t, http.StatusOK, code, body)
	name := body["data"].(map[string]any)["filename"].(string)

	do := func(path string) (int, map[string]any) {
		w := httptest.NewRecorder()
		e.engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return w.Code, out
	}
	code, body = do("/api/upload/blog/" + name)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"deleted": true}, body["data"])
	assert.Empty(t, e.files(t, "blog"))

	code, body = do("/api/upload/blog/" + name)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"deleted": false}, body["data"])

	code, _ = do("/api/upload/secrets/" + name)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminRoutes_RejectMembers(t *testing.T) {
	e := setup(t, "user")

	code, _ := e.post(t, "/api/upload/service-image", "serviceImage", 1, pngBytes)
	assert.Equal(t, http.StatusForbidden, code)
}
