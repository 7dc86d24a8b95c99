package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightline/internal/pkg/utils"
)

func TestValidate_ShortCircuitPerField(t *testing.T) {
	chain := NewChain("t", Field("name", Required("Name is required"), MaxLength(5, "Too long")))

	errs := chain.Validate(map[string]any{"name": ""})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "Name is required", errs[0].Message)
}

func TestValidate_FirstFailureWins(t *testing.T) {
	chain := NewChain("t", Field("code",
		MinLength(3, "Too short"),
		Pattern(regexp.MustCompile(`^[0-9]+$`), "Digits only"),
	))

	errs := chain.Validate(map[string]any{"code": "a"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Too short", errs[0].Message)
	assert.Equal(t, "a", errs[0].Value)
}

func TestValidate_AllFieldsEvaluated(t *testing.T) {
	chain := NewChain("t",
		Field("a", Required("a required")),
		Field("b", Required("b required")),
		Field("c", Required("c required")),
	)

	errs := chain.Validate(map[string]any{"b": "ok"})
	require.Len(t, errs, 2)
	assert.Equal(t, "a", errs[0].Field)
	assert.Equal(t, "c", errs[1].Field)
}

func TestValidate_OptionalIsOrderIndependent(t *testing.T) {
	digits := regexp.MustCompile(`^\d+$`)
	before := NewChain("t", Field("phone", Pattern(digits, "Digits only")))
	after := NewChain("t", Field("phone", Pattern(digits, "Digits only"), MaxLength(20, "Too long")))

	for _, body := range []map[string]any{{}, {"phone": nil}, {"phone": "   "}} {
		assert.Empty(t, before.Validate(body))
		assert.Empty(t, after.Validate(body))
	}

	assert.Len(t, before.Validate(map[string]any{"phone": "12a"}), 1)
}

func TestValidate_RequiredDeclaredLast(t *testing.T) {
	chain := NewChain("t", Field("title", MaxLength(3, "Too long"), Required("Title is required")))

	errs := chain.Validate(map[string]any{})
	require.Len(t, errs, 1)
	assert.Equal(t, "Title is required", errs[0].Message)
}

func TestValidate_BoundsInclusive(t *testing.T) {
	chain := NewChain("t",
		Field("name", MinLength(2, "min"), MaxLength(4, "max")),
		Field("qty", Min(1, "min"), Max(10, "max")),
	)

	assert.Empty(t, chain.Validate(map[string]any{"name": "ab", "qty": float64(1)}))
	assert.Empty(t, chain.Validate(map[string]any{"name": "abcd", "qty": float64(10)}))
	assert.Len(t, chain.Validate(map[string]any{"name": "a", "qty": float64(0)}), 2)
	assert.Len(t, chain.Validate(map[string]any{"name": "abcde", "qty": float64(11)}), 2)
}

func TestValidate_LengthCountsRunes(t *testing.T) {
	chain := NewChain("t", Field("name", MaxLength(3, "max")))
	assert.Empty(t, chain.Validate(map[string]any{"name": "äöü"}))
}

func TestValidate_EnumIsCaseSensitive(t *testing.T) {
	chain := NewChain("t", Field("status", Enum([]string{"new", "read"}, "")))

	assert.Empty(t, chain.Validate(map[string]any{"status": "new"}))
	errs := chain.Validate(map[string]any{"status": "New"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Must be one of: new, read", errs[0].Message)
}

func TestValidate_NestedPath(t *testing.T) {
	chain := NewChain("t",
		Field("customer.email", Required("Email is required"), IsEmail("Please provide a valid email")),
		Field("address.zipCode", Pattern(regexp.MustCompile(`^\d{5}$`), "Invalid zip")),
	)

	errs := chain.Validate(map[string]any{})
	require.Len(t, errs, 1)
	assert.Equal(t, "customer.email", errs[0].Field)
	assert.Equal(t, "Email is required", errs[0].Message)

	errs = chain.Validate(map[string]any{"customer": "not-an-object"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Email is required", errs[0].Message)

	errs = chain.Validate(map[string]any{"customer": map[string]any{"email": "nope"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "Please provide a valid email", errs[0].Message)

	assert.Empty(t, chain.Validate(map[string]any{
		"customer": map[string]any{"email": "jo@example.com"},
		"address":  map[string]any{"zipCode": "90210"},
	}))
}

func TestValidate_TypeChecks(t *testing.T) {
	chain := NewChain("t",
		Field("site", IsURL("url")),
		Field("date", IsISODate("date")),
		Field("flag", IsBoolean("bool")),
		Field("tags", IsArray("array")),
	)

	assert.Empty(t, chain.Validate(map[string]any{
		"site": "https://example.com/a",
		"date": "2026-03-01",
		"flag": true,
		"tags": []any{"a"},
	}))
	assert.Empty(t, chain.Validate(map[string]any{
		"site": "/uploads/blog/photo.jpg",
		"date": "2026-03-01T10:00:00Z",
		"flag": "false",
	}))

	errs := chain.Validate(map[string]any{
		"site": "not a url",
		"date": "03/01/2026",
		"flag": "maybe",
		"tags": "a,b",
	})
	assert.Len(t, errs, 4)
}

func TestValidate_CustomSeesWholeBody(t *testing.T) {
	matches := func(v any, body map[string]any) bool { return v == body["password"] }
	chain := NewChain("t", Field("confirmPassword", Required("required"), Custom(matches, "Passwords do not match")))

	assert.Empty(t, chain.Validate(map[string]any{"password": "secret1", "confirmPassword": "secret1"}))
	errs := chain.Validate(map[string]any{"password": "secret1", "confirmPassword": "secret2"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Passwords do not match", errs[0].Message)
}

func TestBodyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	chain := NewChain("contact",
		Field("email", Required("Email is required"), IsEmail("Please provide a valid email")),
		Field("name", Required("Name is required")),
	)

	reached := false
	r := gin.New()
	r.POST("/x", Body(chain), func(c *gin.Context) {
		reached = true
		var req struct {
			Email string `json:"email"`
		}
		require.NoError(t, c.ShouldBindBodyWith(&req, binding.JSON))
		c.JSON(http.StatusOK, gin.H{"email": req.Email})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"email":"bad","name":"A"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)

	var body struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"email":"a@b.co","name":"A"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Contains(t, w.Body.String(), "a@b.co")
}

func TestBodyMiddleware_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", Body(NewChain("t")), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON body")
}

func TestQueryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	chain := NewChain("list", Field("page", Min(1, "Page must be a positive integer")))

	r := gin.New()
	r.GET("/x", Query(chain), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?page=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?page=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStrongPassword(t *testing.T) {
	chain := NewChain("pw", Field("password", Required("required"), StrongPassword("weak")))

	assert.Empty(t, chain.Validate(map[string]any{"password": "Sparky42"}))
	errs := chain.Validate(map[string]any{"password": "sparky42"})
	require.Len(t, errs, 1)
	assert.Equal(t, "weak", errs[0].Message)
}

func TestPaginationChain(t *testing.T) {
	assert.Empty(t, Pagination.Validate(map[string]any{"page": "2", "limit": "6"}))
	assert.Empty(t, Pagination.Validate(map[string]any{}))

	errs := Pagination.Validate(map[string]any{"page": "0", "limit": "500"})
	require.Len(t, errs, 2)
	assert.Equal(t, "page", errs[0].Field)
	assert.Equal(t, "limit", errs[1].Field)
}

func TestAddressRules_NestedAbsentParent(t *testing.T) {
	chain := NewChain("addr", AddressRules("address")...)
	assert.Empty(t, chain.Validate(map[string]any{}))

	errs := chain.Validate(map[string]any{"address": map[string]any{"zipCode": "ABC"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "address.zipCode", errs[0].Field)
}

func TestIsISODate_MatchesHandlerParsing(t *testing.T) {
	chain := NewChain("t", Field("date", IsISODate("date")))
	for _, raw := range []string{"2026-03-01", "2026-03-01T09:30", "2026-03-01T09:30:15", "2026-03-01T09:30:15.5+02:00", "03/01/2026", "2026-13-01"} {
		_, parseErr := utils.ParseTime(raw)
		errs := chain.Validate(map[string]any{"date": raw})
		assert.Equal(t, parseErr == nil, len(errs) == 0, raw)
	}
}
