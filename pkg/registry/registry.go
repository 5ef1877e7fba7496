// Package registry exposes a validated security policy for read-only lookup
// by section name and resolves environment overlays into effective views.
//
// A Registry is immutable after construction. Every accessor hands out a
// deep copy, so it is safe to share one Registry between goroutines and to
// call Resolve concurrently on the same base.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/validation"
)

// Registry holds one immutable policy.
type Registry struct {
	policy      *policy.Policy
	environment policy.Environment
	log         logger.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for construction and resolution events.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New validates p and returns a registry holding a private copy of it.
// Validation failures are returned as is; callers are expected to abort
// startup on error.
func New(p *policy.Policy, opts ...Option) (*Registry, error) {
	r := &Registry{
		environment: policy.Production,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := validation.Validate(p); err != nil {
		r.log.Error("Security policy failed validation", logger.ErrorField(err))
		return nil, fmt.Errorf("security policy failed validation: %w", err)
	}
	r.policy = p.Clone()
	r.log.Debug("Security policy registry initialised",
		logger.IntField("sections", len(policy.SectionNames())),
		logger.EnvironmentField(string(r.environment)),
	)
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(p *policy.Policy, opts ...Option) *Registry {
	r, err := New(p, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry built from policy.Baseline. It
// is constructed on first use and panics if the baseline is invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNew(policy.Baseline())
	})
	return defaultRegistry
}

// Environment reports which environment this registry was resolved for.
// Registries built with New report production.
func (r *Registry) Environment() policy.Environment {
	return r.environment
}

// Section returns a deep copy of the named section. The dynamic type is the
// section's record type from package policy.
func (r *Registry) Section(name string) (any, error) {
	section, err := policy.ParseSectionName(name)
	if err != nil {
		return nil, err
	}
	return r.policy.Section(section)
}

// Sections lists every section identifier in lexical order.
func (r *Registry) Sections() []policy.SectionName {
	names := policy.SectionNames()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// HasSection reports whether name identifies a section.
func (r *Registry) HasSection(name string) bool {
	_, err := policy.ParseSectionName(name)
	return err == nil
}

// Policy returns a deep copy of the whole policy.
func (r *Registry) Policy() *policy.Policy {
	return r.policy.Clone()
}

// CSP returns a copy of the CSP directives.
func (r *Registry) CSP() policy.CSP {
	return r.policy.CSP.Clone()
}

// SecurityHeaders returns a copy of the static security headers.
func (r *Registry) SecurityHeaders() policy.SecurityHeaders {
	return r.policy.SecurityHeaders.Clone()
}

// HeaderSet returns the security headers with Content-Security-Policy
// serialized from the CSP section.
func (r *Registry) HeaderSet() map[string]string {
	return r.policy.HeaderSet()
}

// RateLimits returns a copy of every named limiter.
func (r *Registry) RateLimits() policy.RateLimits {
	return r.policy.RateLimits.Clone()
}

// RateLimit returns the named limiter. The second value is false if no such
// limiter exists.
func (r *Registry) RateLimit(name string) (policy.RateLimit, bool) {
	rl, ok := r.policy.RateLimits[name]
	return rl, ok
}

// ValidationRules returns a copy of the validation patterns and password rules.
func (r *Registry) ValidationRules() policy.ValidationRules {
	return r.policy.ValidationRules.Clone()
}

// UploadRestrictions returns a copy of the upload bounds.
func (r *Registry) UploadRestrictions() policy.UploadRestrictions {
	return r.policy.UploadRestrictions.Clone()
}

// AuthSecurity returns a copy of the JWT, session, password and OTP settings.
func (r *Registry) AuthSecurity() policy.AuthSecurity {
	return r.policy.AuthSecurity.Clone()
}

// APISecurity returns a copy of the CORS, CSRF and API key settings.
func (r *Registry) APISecurity() policy.APISecurity {
	return r.policy.APISecurity.Clone()
}

// DataProtection returns a copy of the encryption, PII and retention settings.
func (r *Registry) DataProtection() policy.DataProtection {
	return r.policy.DataProtection.Clone()
}

// SecurityMonitoring returns a copy of the alerting and audit settings.
func (r *Registry) SecurityMonitoring() policy.SecurityMonitoring {
	return r.policy.SecurityMonitoring.Clone()
}

// ThirdPartySecurity returns a copy of the integration flags.
func (r *Registry) ThirdPartySecurity() policy.ThirdPartySecurity {
	return r.policy.ThirdPartySecurity.Clone()
}

// Overlay returns a copy of the overlay declared for env.
func (r *Registry) Overlay(env policy.Environment) policy.Overlay {
	return r.policy.Overlay(env)
}
