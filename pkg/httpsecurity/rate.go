package httpsecurity

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

// LimiterSpec is a fixed window limit expressed as token bucket parameters:
// Max tokens refilled evenly over Window.
type LimiterSpec struct {
	Name   string
	Window time.Duration
	Limit  rate.Limit
	Burst  int
}

// Limit converts rl into a refill rate and burst.
func Limit(name string, rl policy.RateLimit) (LimiterSpec, error) {
	window, err := policy.ParseDuration(rl.Window)
	if err != nil {
		return LimiterSpec{}, fmt.Errorf("rate limit %s: %w", name, err)
	}
	if window <= 0 {
		return LimiterSpec{}, fmt.Errorf("rate limit %s: window must be positive, got %q", name, rl.Window)
	}
	if rl.Max <= 0 {
		return LimiterSpec{}, fmt.Errorf("rate limit %s: max must be positive, got %d", name, rl.Max)
	}
	return LimiterSpec{
		Name:   name,
		Window: window,
		Limit:  rate.Every(window / time.Duration(rl.Max)),
		Burst:  rl.Max,
	}, nil
}

// NewLimiter returns a fresh token bucket for the spec.
func (s LimiterSpec) NewLimiter() *rate.Limiter {
	return rate.NewLimiter(s.Limit, s.Burst)
}

// Limits converts every named limiter of r plus the API key limiter, which
// is reported as "api_keys". Specs are sorted by name.
func Limits(r *registry.Registry) ([]LimiterSpec, error) {
	limits := r.RateLimits()
	if limits == nil {
		limits = policy.RateLimits{}
	}
	limits["api_keys"] = r.APISecurity().APIKeys.RateLimit

	names := make([]string, 0, len(limits))
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]LimiterSpec, 0, len(names))
	for _, name := range names {
		spec, err := Limit(name, limits[name])
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
