package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gallery/adminhub/internal/config"
	"gallery/adminhub/internal/service"
	jwtpkg "gallery/adminhub/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newManager() *jwtpkg.Manager {
	return jwtpkg.NewManager("test-key", "gallery-test", time.Minute, time.Hour)
}

func bearer(t *testing.T, m *jwtpkg.Manager, role string) string {
	t.Helper()
	token, err := m.GenerateAccessToken(uuid.New(), "user@example.com", role)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return "Bearer " + token
}

func TestAdminGuard(t *testing.T) {
	m := newManager()
	r := gin.New()
	r.GET("/admin", JWTAuth(m), AdminAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/root", JWTAuth(m), SuperAdminAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	refresh, _, _ := m.GenerateRefreshToken(uuid.New())

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"no token", "/admin", "", http.StatusUnauthorized},
		{"malformed header", "/admin", "Token abc", http.StatusUnauthorized},
		{"refresh token", "/admin", "Bearer " + refresh, http.StatusUnauthorized},
		{"no role", "/admin", bearer(t, m, ""), http.StatusForbidden},
		{"artist", "/admin", bearer(t, m, "artist"), http.StatusForbidden},
		{"admin", "/admin", bearer(t, m, "admin"), http.StatusNoContent},
		{"super admin", "/admin", bearer(t, m, "super_admin"), http.StatusNoContent},
		{"admin on super admin route", "/root", bearer(t, m, "admin"), http.StatusForbidden},
		{"super admin on super admin route", "/root", bearer(t, m, "super_admin"), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

type stubResolver struct {
	artistID uint
	err      error
}

func (s stubResolver) ResolveArtistID(context.Context, uuid.UUID) (uint, error) {
	return s.artistID, s.err
}

func TestRequireArtist(t *testing.T) {
	m := newManager()
	tests := []struct {
		name     string
		resolver stubResolver
		status   int
	}{
		{"linked", stubResolver{artistID: 7}, http.StatusOK},
		{"no profile", stubResolver{err: service.ErrNoArtistProfile}, http.StatusForbidden},
		{"store failure", stubResolver{err: io.ErrUnexpectedEOF}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", JWTAuth(m), RequireArtist(tt.resolver), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"artist_id": c.GetUint(ContextKeyArtistID)})
			})
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", bearer(t, m, "artist"))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && !strings.Contains(w.Body.String(), `"artist_id":7`) {
				t.Errorf("body = %s, want artist_id 7", w.Body.String())
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	r := gin.New()
	r.Use(Sanitize())
	var got map[string]interface{}
	r.POST("/echo", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&got); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	body := `{"bio":"<script>alert(1)</script>Paints <b>oil</b> & water","year":1999,"tags":["<i>x</i>"],"nested":{"note":"<a href=\"x\">link</a>"}}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if got["bio"] != "Paints oil & water" {
		t.Errorf("bio = %q", got["bio"])
	}
	if n, ok := got["year"].(float64); !ok || n != 1999 {
		t.Errorf("year = %v, want 1999", got["year"])
	}
	if tags, _ := got["tags"].([]interface{}); len(tags) != 1 || tags[0] != "x" {
		t.Errorf("tags = %v", got["tags"])
	}
	if nested, _ := got["nested"].(map[string]interface{}); nested["note"] != "link" {
		t.Errorf("nested = %v", got["nested"])
	}

	// Entity-encoded markup must not come back as live tags once decoded.
	encoded := `{"bio":"&lt;script&gt;alert(1)&lt;/script&gt;","double":"&amp;lt;img src=x onerror=alert(1)&amp;gt;hi","math":"a &lt; b","plain":"<script>alert(1)</script>"}`
	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	for _, key := range []string{"bio", "double", "plain"} {
		if v, _ := got[key].(string); strings.Contains(v, "<") {
			t.Errorf("%s = %q, want no markup", key, v)
		}
	}
	if got["bio"] != "" || got["plain"] != "" {
		t.Errorf("bio = %q plain = %q, want both empty", got["bio"], got["plain"])
	}
	if got["double"] != "hi" {
		t.Errorf("double = %q, want hi", got["double"])
	}
	if got["math"] != "a < b" {
		t.Errorf("math = %q, want a < b", got["math"])
	}

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if w.Code != http.StatusBadRequest || env["message"] != "malformed JSON" {
		t.Errorf("malformed body: status %d body %s", w.Code, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.CORSConfig
		origin     string
		wantOrigin string
	}{
		{"unconfigured allows any origin", config.CORSConfig{}, "https://a.test", "*"},
		{"wildcard", config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, "https://a.test", "*"},
		{"listed origin", config.CORSConfig{AllowedOrigins: []string{"https://a.test"}}, "https://a.test", "https://a.test"},
		{"unlisted origin", config.CORSConfig{AllowedOrigins: []string{"https://a.test"}}, "https://b.test", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.cfg))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
