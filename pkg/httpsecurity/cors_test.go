package httpsecurity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

func TestCORSOptions(t *testing.T) {
	r := registry.Default()
	opts := CORSOptions(r)

	assert.Equal(t, r.APISecurity().CORS.Origins, opts.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST", "PUT", "DELETE", "PATCH"}, opts.AllowedMethods)
	assert.Contains(t, opts.AllowedHeaders, "X-CSRF-Token")
	assert.True(t, opts.AllowCredentials)
	assert.Equal(t, DefaultCORSMaxAge, opts.MaxAge)
	assert.NotContains(t, opts.AllowedOrigins, "*")

	require.NotNil(t, opts.AllowOriginFunc)
	assert.True(t, opts.AllowOriginFunc(nil, "https://vendorly.in"))
	assert.False(t, opts.AllowOriginFunc(nil, "https://VENDORLY.in"))
	assert.False(t, opts.AllowOriginFunc(nil, "https://vendorly.in.evil.example"))
}

func TestCORSPreflight(t *testing.T) {
	router := chi.NewRouter()
	router.Use(cors.Handler(CORSOptions(registry.Default())))
	router.Post("/api", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{name: "allowed origin", origin: "https://www.vendorly.in", wantAllow: "https://www.vendorly.in"},
		{name: "staging origin", origin: "https://staging.vendorly.in", wantAllow: "https://staging.vendorly.in"},
		{name: "plain http is rejected", origin: "http://vendorly.in", wantAllow: ""},
		{name: "foreign origin is rejected", origin: "https://evil.example", wantAllow: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantAllow != "" {
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie(registry.Default(), "session", "abc")
	require.NotNil(t, c)
	assert.Equal(t, "session", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 86400, c.MaxAge)
	assert.NoError(t, c.Valid())
}

func TestCSRFCookie(t *testing.T) {
	c, ok := CSRFCookie(registry.Default(), "token")
	require.True(t, ok)
	assert.Equal(t, "csrf_token", c.Name)
	assert.False(t, c.HttpOnly)
	assert.True(t, c.Secure)

	p := policy.Baseline()
	p.APISecurity.CSRF.Enabled = false
	c, ok = CSRFCookie(registry.MustNew(p), "token")
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, sameSite("strict"))
	assert.Equal(t, http.SameSiteLaxMode, sameSite("Lax"))
	assert.Equal(t, http.SameSiteNoneMode, sameSite("none"))
	assert.Equal(t, http.SameSiteDefaultMode, sameSite(""))
}
