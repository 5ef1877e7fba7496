// Package validation checks a security policy against its schema before the
// policy is exposed through a registry. It runs at startup or as a build
// step, never per request.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/http/httpguts"

	"github.com/lewisedginton/security_policy/pkg/policy"
)

var (
	mimePattern   = regexp.MustCompile(`^[a-z]+/[a-z0-9][a-z0-9.+-]*$`)
	methodPattern = regexp.MustCompile(`^[A-Z]+$`)
)

var httpMethods = map[string]struct{}{
	"GET": {}, "HEAD": {}, "POST": {}, "PUT": {}, "PATCH": {},
	"DELETE": {}, "OPTIONS": {}, "CONNECT": {}, "TRACE": {},
}

var sameSiteModes = map[string]struct{}{"strict": {}, "lax": {}, "none": {}}

// checker accumulates findings.
type checker struct {
	result *multierror.Error
}

func (c *checker) add(err error) {
	c.result = multierror.Append(c.result, err)
}

func (c *checker) invalid(section, key, value, reason string) {
	c.add(&InvalidValueError{Location: Location{Section: section, Key: key, Value: value}, Reason: reason})
}

func (c *checker) duration(section, key, value string) {
	if !policy.IsDuration(value) {
		c.add(&InvalidDurationFormatError{Location{Section: section, Key: key, Value: value}})
	}
}

func (c *checker) size(section, key, value string) {
	if !policy.IsSize(value) {
		c.add(&InvalidSizeFormatError{Location{Section: section, Key: key, Value: value}})
	}
}

func (c *checker) positive(section, key string, value int) {
	if value <= 0 {
		c.invalid(section, key, strconv.Itoa(value), "must be a positive integer")
	}
}

func (c *checker) entry(section, key, value, expected string, ok bool) {
	if !ok {
		c.add(&InvalidEntryFormatError{Location: Location{Section: section, Key: key, Value: value}, Expected: expected})
	}
}

// Validate checks every section of p. It returns nil or a
// *multierror.Error whose entries are the typed errors of this package.
func Validate(p *policy.Policy) error {
	if p == nil {
		return &InvalidValueError{Location: Location{Section: "policy"}, Reason: "policy is nil"}
	}
	c := &checker{}
	c.csp(string(policy.SectionCSP), p.CSP)
	c.headers(string(policy.SectionSecurityHeaders), p.SecurityHeaders)
	c.overlays(p)
	c.rateLimits(p.RateLimits)
	c.validationRules(p.ValidationRules)
	c.uploads(p.UploadRestrictions)
	c.auth(p.AuthSecurity)
	c.api(p.APISecurity)
	c.dataProtection(p.DataProtection)
	c.monitoring(p.SecurityMonitoring)
	return c.result.ErrorOrNil()
}

func (c *checker) csp(section string, csp policy.CSP) {
	for _, directive := range sortedKeys(csp) {
		if !policy.KnownDirective(directive) {
			c.invalid(section, directive, "", "unknown CSP directive")
			continue
		}
		for i, token := range csp[directive] {
			if token == "" || strings.ContainsAny(token, " \t\r\n;,") {
				c.invalid(section, fmt.Sprintf("%s[%d]", directive, i), token, "source token must be non-empty and contain no separators")
			}
		}
	}
}

func (c *checker) headers(section string, headers policy.SecurityHeaders) {
	for _, name := range sortedKeys(headers) {
		value := headers[name]
		if !httpguts.ValidHeaderFieldName(name) {
			c.invalid(section, name, value, "invalid header field name")
		}
		if value == "" || !httpguts.ValidHeaderFieldValue(value) {
			c.invalid(section, name, value, "invalid header field value")
		}
	}
}

func (c *checker) overlays(p *policy.Policy) {
	for _, env := range sortedKeys(p.Overlays) {
		overlay := p.Overlays[policy.Environment(env)]
		section, ok := policy.Environment(env).OverlaySection()
		if !ok {
			c.invalid("overlays", env, "", "only development and staging may carry an overlay")
			continue
		}
		name := string(section)
		c.csp(name+".csp_policy", overlay.CSP)
		c.headers(name+".security_headers", overlay.SecurityHeaders)
		for _, directive := range sortedKeys(overlay.CSP) {
			if _, ok := p.CSP[directive]; !ok {
				c.invalid(name, "csp_policy."+directive, "", "overlay key is not present in the base section")
			}
		}
		for _, header := range sortedKeys(overlay.SecurityHeaders) {
			if _, ok := p.SecurityHeaders[header]; !ok {
				c.invalid(name, "security_headers."+header, overlay.SecurityHeaders[header], "overlay key is not present in the base section")
			}
		}
	}
}

func (c *checker) rateLimit(section, key string, rl policy.RateLimit) {
	c.duration(section, key+".window", rl.Window)
	if d, err := policy.ParseDuration(rl.Window); err == nil && d <= 0 {
		c.invalid(section, key+".window", rl.Window, "must be a positive duration")
	}
	c.positive(section, key+".max", rl.Max)
}

func (c *checker) rateLimits(limits policy.RateLimits) {
	section := string(policy.SectionRateLimits)
	if len(limits) == 0 {
		c.invalid(section, "", "", "at least one limiter is required")
	}
	for _, name := range sortedKeys(limits) {
		c.rateLimit(section, name, limits[name])
	}
}

func (c *checker) validationRules(rules policy.ValidationRules) {
	section := string(policy.SectionValidationRules)
	for _, field := range sortedKeys(rules.Patterns) {
		pattern := rules.Patterns[field]
		if _, err := regexp.Compile(pattern); err != nil {
			c.add(&InvalidPatternError{Location: Location{Section: section, Key: field, Value: pattern}, Err: err})
		}
	}
	c.positive(section, "password.min_length", rules.Password.MinLength)
}

func (c *checker) uploads(u policy.UploadRestrictions) {
	section := string(policy.SectionUploadRestrictions)
	c.size(section, "max_file_size", u.MaxFileSize)
	for i, mime := range u.AllowedTypes {
		c.entry(section, fmt.Sprintf("allowed_types[%d]", i), mime, "type/subtype MIME string", IsMIMEType(mime))
	}
	c.positive(section, "max_files_per_upload", u.MaxFilesPerUpload)
	c.positive(section, "image_processing.max_width", u.ImageProcessing.MaxWidth)
	c.positive(section, "image_processing.max_height", u.ImageProcessing.MaxHeight)
	if q := u.ImageProcessing.Quality; q < 1 || q > 100 {
		c.invalid(section, "image_processing.quality", strconv.Itoa(q), "must be between 1 and 100")
	}
}

func (c *checker) auth(a policy.AuthSecurity) {
	section := string(policy.SectionAuthSecurity)
	c.entry(section, "jwt.algorithm", a.JWT.Algorithm, "registered JWS algorithm", a.JWT.Algorithm != "none" && jwt.GetSigningMethod(a.JWT.Algorithm) != nil)
	c.duration(section, "jwt.expiry", a.JWT.Expiry)
	c.duration(section, "jwt.refresh_expiry", a.JWT.RefreshExpiry)
	if _, ok := sameSiteModes[a.Session.SameSite]; !ok {
		c.invalid(section, "session.same_site", a.Session.SameSite, "must be one of strict, lax, none")
	}
	c.positive(section, "session.max_age", a.Session.MaxAge)
	c.positive(section, "password_policy.min_length", a.PasswordPolicy.MinLength)
	c.positive(section, "password_policy.max_attempts", a.PasswordPolicy.MaxAttempts)
	c.duration(section, "password_policy.lockout_duration", a.PasswordPolicy.LockoutDuration)
	c.positive(section, "otp.length", a.OTP.Length)
	c.duration(section, "otp.expiry", a.OTP.Expiry)
	c.positive(section, "otp.max_attempts", a.OTP.MaxAttempts)
}

func (c *checker) api(a policy.APISecurity) {
	section := string(policy.SectionAPISecurity)
	for i, origin := range a.CORS.Origins {
		c.entry(section, fmt.Sprintf("cors.origins[%d]", i), origin, "absolute https:// origin", IsHTTPSOrigin(origin))
	}
	for i, method := range a.CORS.Methods {
		c.entry(section, fmt.Sprintf("cors.methods[%d]", i), method, "uppercase HTTP verb", IsHTTPMethod(method))
	}
	for i, header := range a.CORS.Headers {
		c.entry(section, fmt.Sprintf("cors.headers[%d]", i), header, "HTTP header name", httpguts.ValidHeaderFieldName(header))
	}
	if a.CSRF.Enabled {
		c.entry(section, "csrf.header_name", a.CSRF.HeaderName, "HTTP header name", httpguts.ValidHeaderFieldName(a.CSRF.HeaderName))
		if a.CSRF.CookieName == "" {
			c.invalid(section, "csrf.cookie_name", "", "required when csrf is enabled")
		}
	}
	c.entry(section, "api_keys.header_name", a.APIKeys.HeaderName, "HTTP header name", httpguts.ValidHeaderFieldName(a.APIKeys.HeaderName))
	c.rateLimit(section, "api_keys.rate_limit", a.APIKeys.RateLimit)
}

func (c *checker) dataProtection(d policy.DataProtection) {
	section := string(policy.SectionDataProtection)
	c.duration(section, "encryption.key_rotation", d.Encryption.KeyRotation)
	for i, field := range d.PIIFields {
		if field == "" {
			c.invalid(section, fmt.Sprintf("pii_fields[%d]", i), field, "field name must not be empty")
		}
	}
	for _, kind := range sortedKeys(d.DataRetention) {
		c.duration(section, "data_retention."+kind, d.DataRetention[kind])
	}
}

func (c *checker) monitoring(m policy.SecurityMonitoring) {
	section := string(policy.SectionSecurityMonitoring)
	c.positive(section, "failed_login_threshold", m.FailedLoginThreshold)
	c.duration(section, "log_retention", m.LogRetention)
}

// IsHTTPSOrigin reports whether s is a serialized https origin: scheme and
// host with an optional port, no path, query, fragment or userinfo.
func IsHTTPSOrigin(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "https" &&
		u.Host != "" &&
		u.Hostname() != "" &&
		u.User == nil &&
		u.Path == "" &&
		u.RawQuery == "" &&
		u.Fragment == "" &&
		!u.ForceQuery &&
		s == "https://"+u.Host
}

// IsHTTPMethod reports whether s is an uppercase standard HTTP verb.
func IsHTTPMethod(s string) bool {
	if !methodPattern.MatchString(s) {
		return false
	}
	_, ok := httpMethods[s]
	return ok
}

// IsMIMEType reports whether s has the type/subtype form.
func IsMIMEType(s string) bool {
	return mimePattern.MatchString(s)
}

// CompilePatterns compiles every validation pattern, keyed by field name.
func CompilePatterns(rules policy.ValidationRules) (map[string]*regexp.Regexp, error) {
	var result *multierror.Error
	out := make(map[string]*regexp.Regexp, len(rules.Patterns))
	for _, field := range sortedKeys(rules.Patterns) {
		pattern := rules.Patterns[field]
		re, err := regexp.Compile(pattern)
		if err != nil {
			result = multierror.Append(result, &InvalidPatternError{
				Location: Location{Section: string(policy.SectionValidationRules), Key: field, Value: pattern},
				Err:      err,
			})
			continue
		}
		out[field] = re
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
