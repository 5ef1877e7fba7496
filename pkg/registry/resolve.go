package registry

import (
	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
)

// Resolve returns the effective registry for env.
//
// Production yields a copy of base. Development and staging replace each
// top-level key named by their overlay wholesale: an overlay script-src list
// becomes the effective script-src list, it is not unioned with the base
// list. base is never modified and each call returns an independently owned
// registry.
func Resolve(base *Registry, env string) (*Registry, error) {
	e, err := policy.ParseEnvironment(env)
	if err != nil {
		base.log.Error("Cannot resolve security policy", logger.ErrorField(err))
		return nil, err
	}

	var effective *policy.Policy
	if e == policy.Production {
		effective = base.policy.Clone()
	} else {
		effective = base.policy.ApplyOverlay(base.policy.Overlays[e])
	}

	base.log.Debug("Resolved security policy", logger.EnvironmentField(string(e)))
	return &Registry{
		policy:      effective,
		environment: e,
		log:         base.log,
	}, nil
}

// ForEnvironment resolves the process-wide default registry for env.
func ForEnvironment(env string) (*Registry, error) {
	return Resolve(Default(), env)
}
