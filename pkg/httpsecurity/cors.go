package httpsecurity

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/lewisedginton/security_policy/pkg/registry"
)

// DefaultCORSMaxAge is the preflight cache lifetime in seconds.
const DefaultCORSMaxAge = 300

// CORSOptions maps api_security.cors onto go-chi/cors options. Origins are
// an exact allow-list; no wildcard or case folding is introduced.
func CORSOptions(r *registry.Registry) cors.Options {
	c := r.APISecurity().CORS
	return cors.Options{
		AllowedOrigins: c.Origins,
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return c.AllowsOrigin(origin)
		},
		AllowedMethods:   c.Methods,
		AllowedHeaders:   c.Headers,
		AllowCredentials: c.Credentials,
		MaxAge:           DefaultCORSMaxAge,
	}
}

// SessionCookie returns a cookie carrying name and value with the flags
// auth_security.session prescribes.
func SessionCookie(r *registry.Registry, name, value string) *http.Cookie {
	s := r.AuthSecurity().Session
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Secure:   s.Secure,
		HttpOnly: s.HTTPOnly,
		SameSite: sameSite(s.SameSite),
		MaxAge:   s.MaxAge,
	}
}

// CSRFCookie returns the CSRF double-submit cookie. JavaScript must read it,
// so it is never HttpOnly. The second value is false when CSRF is disabled.
func CSRFCookie(r *registry.Registry, token string) (*http.Cookie, bool) {
	csrf := r.APISecurity().CSRF
	if !csrf.Enabled {
		return nil, false
	}
	c := SessionCookie(r, csrf.CookieName, token)
	c.HttpOnly = false
	return c, true
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteDefaultMode
}
