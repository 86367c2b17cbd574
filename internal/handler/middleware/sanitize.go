package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"gallery/adminhub/pkg/response"
)

// Sanitize strips HTML from every string in a JSON request body, nested values included.
func Sanitize() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") || c.Request.Body == nil {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "invalid body")
			c.Abort()
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body interface{}
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			response.BadRequest(c, "malformed JSON")
			c.Abort()
			return
		}

		cleaned, _ := json.Marshal(sanitizeValue(policy, body))
		c.Request.Body = io.NopCloser(bytes.NewReader(cleaned))
		c.Request.ContentLength = int64(len(cleaned))

		c.Next()
	}
}

// maxSanitizePasses bounds how many layers of entity encoding are peeled off.
const maxSanitizePasses = 8

// sanitizeString strips markup and returns plain text with entities decoded.
// Decoding can surface tags that were entity-encoded in the input, so the
// policy runs again until the text stops changing. Input still changing after
// maxSanitizePasses is returned in its escaped form.
func sanitizeString(policy *bluemonday.Policy, s string) string {
	clean := s
	for i := 0; i < maxSanitizePasses; i++ {
		escaped := policy.Sanitize(clean)
		next := html.UnescapeString(escaped)
		if next == clean {
			return next
		}
		clean = next
	}
	return policy.Sanitize(clean)
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return sanitizeString(policy, val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = sanitizeValue(policy, item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = sanitizeValue(policy, item)
		}
		return val
	default:
		return v
	}
}
