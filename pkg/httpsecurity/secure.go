// Package httpsecurity converts a resolved policy registry into the option
// structs consumed by the HTTP layer: unrolled/secure for response headers,
// go-chi/cors for cross-origin rules and x/time/rate for limiter parameters.
// It also derives session cookies, JWT claims and parser options, and
// one-time password settings from the auth sections.
package httpsecurity

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/unrolled/secure"

	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

// ErrUnsupportedHeader is returned when a security header has no
// counterpart in secure.Options.
var ErrUnsupportedHeader = errors.New("security header not supported by secure.Options")

// STS is a parsed Strict-Transport-Security value.
type STS struct {
	MaxAge            int64
	IncludeSubdomains bool
	Preload           bool
}

// ParseSTS parses a Strict-Transport-Security header value such as
// "max-age=31536000; includeSubDomains; preload".
func ParseSTS(value string) (STS, error) {
	var sts STS
	seenMaxAge := false
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, arg, hasArg := strings.Cut(part, "=")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "max-age":
			if !hasArg {
				return STS{}, fmt.Errorf("strict-transport-security %q: max-age without value", value)
			}
			n, err := strconv.ParseInt(strings.Trim(strings.TrimSpace(arg), `"`), 10, 64)
			if err != nil || n < 0 {
				return STS{}, fmt.Errorf("strict-transport-security %q: invalid max-age", value)
			}
			sts.MaxAge = n
			seenMaxAge = true
		case "includesubdomains":
			sts.IncludeSubdomains = true
		case "preload":
			sts.Preload = true
		default:
			return STS{}, fmt.Errorf("strict-transport-security %q: unknown directive %q", value, name)
		}
	}
	if !seenMaxAge {
		return STS{}, fmt.Errorf("strict-transport-security %q: max-age is required", value)
	}
	return sts, nil
}

// SecureOptions maps the security headers and CSP of r onto secure.Options.
// Every header must have a counterpart; otherwise ErrUnsupportedHeader is
// returned so a header is never silently dropped.
func SecureOptions(r *registry.Registry) (secure.Options, error) {
	opts := secure.Options{
		ContentSecurityPolicy: r.CSP().String(),
		IsDevelopment:         r.Environment() == policy.Development,
	}

	for name, value := range r.SecurityHeaders() {
		switch http.CanonicalHeaderKey(name) {
		case "X-Frame-Options":
			if strings.EqualFold(value, "DENY") {
				opts.FrameDeny = true
			} else {
				opts.CustomFrameOptionsValue = value
			}
		case "X-Content-Type-Options":
			if !strings.EqualFold(value, "nosniff") {
				return secure.Options{}, fmt.Errorf("%w: %s: %q", ErrUnsupportedHeader, name, value)
			}
			opts.ContentTypeNosniff = true
		case "X-Xss-Protection":
			if value == "1; mode=block" {
				opts.BrowserXssFilter = true
			} else {
				opts.CustomBrowserXssValue = value
			}
		case "Referrer-Policy":
			opts.ReferrerPolicy = value
		case "Permissions-Policy":
			opts.PermissionsPolicy = value
		case "Strict-Transport-Security":
			sts, err := ParseSTS(value)
			if err != nil {
				return secure.Options{}, err
			}
			opts.STSSeconds = sts.MaxAge
			opts.STSIncludeSubdomains = sts.IncludeSubdomains
			opts.STSPreload = sts.Preload
		case "Cross-Origin-Opener-Policy":
			opts.CrossOriginOpenerPolicy = value
		case "Cross-Origin-Embedder-Policy":
			opts.CrossOriginEmbedderPolicy = value
		case "Cross-Origin-Resource-Policy":
			opts.CrossOriginResourcePolicy = value
		default:
			return secure.Options{}, fmt.Errorf("%w: %s", ErrUnsupportedHeader, name)
		}
	}
	return opts, nil
}
