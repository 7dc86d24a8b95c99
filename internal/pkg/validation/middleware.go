package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"brightline/internal/pkg/response"
)

const failedMessage = "Validation failed"

// Body validates the JSON request body. The raw body stays cached on the
// context, so handlers must rebind with c.ShouldBindBodyWith(&req, binding.JSON).
func Body(chain Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := map[string]any{}
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
				response.Abort(c, http.StatusBadRequest, "Invalid JSON body", nil)
				return
			}
		}
		if errs := chain.Validate(body); len(errs) > 0 {
			response.Abort(c, http.StatusBadRequest, failedMessage, errs)
			return
		}
		c.Next()
	}
}

// Query validates URL query parameters. Repeated keys become arrays.
func Query(chain Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := map[string]any{}
		for key, values := range c.Request.URL.Query() {
			if len(values) == 1 {
				body[key] = values[0]
				continue
			}
			arr := make([]any, len(values))
			for i, v := range values {
				arr[i] = v
			}
			body[key] = arr
		}
		if errs := chain.Validate(body); len(errs) > 0 {
			response.Abort(c, http.StatusBadRequest, failedMessage, errs)
			return
		}
		c.Next()
	}
}

// Params validates path parameters such as :id.
func Params(chain Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := map[string]any{}
		for _, p := range c.Params {
			body[p.Key] = p.Value
		}
		if errs := chain.Validate(body); len(errs) > 0 {
			response.Abort(c, http.StatusBadRequest, failedMessage, errs)
			return
		}
		c.Next()
	}
}
