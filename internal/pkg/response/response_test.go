package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &body)
	}
	return w, body
}

func TestEnvelopeInvariant(t *testing.T) {
	cases := []struct {
		name    string
		fn      func(c *gin.Context)
		status  int
		success bool
	}{
		{"success", func(c *gin.Context) { Success(c, gin.H{"a": 1}, "ok") }, 200, true},
		{"success nil data", func(c *gin.Context) { Success(c, nil, "") }, 200, true},
		{"created", func(c *gin.Context) { Created(c, gin.H{"id": 1}, "") }, 201, true},
		{"paginated", func(c *gin.Context) { Paginated(c, []int{1}, 1, 10, 1, "") }, 200, true},
		{"error default", func(c *gin.Context) { Error(c, "boom", 0, nil) }, 500, false},
		{"not found", func(c *gin.Context) { NotFound(c, "") }, 404, false},
		{"bad request", func(c *gin.Context) { BadRequest(c, "", []string{"x"}) }, 400, false},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, 401, false},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "") }, 403, false},
		{"conflict", func(c *gin.Context) { Conflict(c, "") }, 409, false},
		{"validation", func(c *gin.Context) { ValidationError(c, "", nil) }, 422, false},
		{"rate limited", func(c *gin.Context) { RateLimited(c, "") }, 429, false},
		{"server error", func(c *gin.Context) { ServerError(c, "") }, 500, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := record(tc.fn)
			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.success, body["success"])

			_, hasData := body["data"]
			_, hasErrors := body["errors"]
			assert.Equal(t, tc.success, hasData)
			assert.Equal(t, !tc.success, hasErrors)

			ts, ok := body["timestamp"].(string)
			require.True(t, ok)
			_, err := time.Parse(TimestampLayout, ts)
			assert.NoError(t, err)
		})
	}
}

func TestSuccess_CoercesNonSuccessStatus(t *testing.T) {
	w, body := record(func(c *gin.Context) { Success(c, "x", "", http.StatusBadRequest) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
}

func TestSuccess_NoContent(t *testing.T) {
	w, body := record(func(c *gin.Context) { Success(c, nil, "", http.StatusNoContent) })
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, body)

	w, _ = record(NoContent)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestNewPagination_Arithmetic(t *testing.T) {
	for total := int64(0); total <= 40; total++ {
		for limit := 1; limit <= 12; limit++ {
			for page := 1; page <= 6; page++ {
				p := NewPagination(page, limit, total)
				want := int((total + int64(limit) - 1) / int64(limit))
				assert.Equal(t, want, p.TotalPages)
				if total == 0 {
					assert.False(t, p.HasNextPage)
					assert.False(t, p.HasPrevPage)
					continue
				}
				assert.Equal(t, page < want, p.HasNextPage)
				assert.Equal(t, page > 1, p.HasPrevPage)
			}
		}
	}
}

func TestNewPagination_ZeroTotal(t *testing.T) {
	p := NewPagination(3, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
	assert.Nil(t, p.NextPage)
	assert.Nil(t, p.PrevPage)
}

func TestNewPagination_MiddlePage(t *testing.T) {
	p := NewPagination(2, 6, 13)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	require.NotNil(t, p.NextPage)
	require.NotNil(t, p.PrevPage)
	assert.Equal(t, 3, *p.NextPage)
	assert.Equal(t, 1, *p.PrevPage)
}

func TestPaginated_Body(t *testing.T) {
	_, body := record(func(c *gin.Context) { Paginated(c, []int{1, 2}, 1, 2, 5, "Listed") })

	assert.Equal(t, "Listed", body["message"])
	pg, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), pg["totalPages"])
	assert.Equal(t, float64(5), pg["totalItems"])
	assert.Equal(t, float64(2), pg["itemsPerPage"])
	assert.Equal(t, true, pg["hasNextPage"])
	assert.Equal(t, false, pg["hasPrevPage"])
	assert.Nil(t, pg["prevPage"])
}
