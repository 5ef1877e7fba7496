// Package policy defines the typed security policy sections, the literal
// baseline policy and the overlay replacement rule.
package policy

// Policy is the complete set of named configuration sections.
type Policy struct {
	CSP                CSP                     `yaml:"csp_policy" json:"csp_policy"`
	SecurityHeaders    SecurityHeaders         `yaml:"security_headers" json:"security_headers"`
	Overlays           map[Environment]Overlay `yaml:"overlays" json:"overlays"`
	RateLimits         RateLimits              `yaml:"rate_limits" json:"rate_limits"`
	ValidationRules    ValidationRules         `yaml:"validation_rules" json:"validation_rules"`
	UploadRestrictions UploadRestrictions      `yaml:"upload_restrictions" json:"upload_restrictions"`
	AuthSecurity       AuthSecurity            `yaml:"auth_security" json:"auth_security"`
	APISecurity        APISecurity             `yaml:"api_security" json:"api_security"`
	DataProtection     DataProtection          `yaml:"data_protection" json:"data_protection"`
	SecurityMonitoring SecurityMonitoring      `yaml:"security_monitoring" json:"security_monitoring"`
	ThirdPartySecurity ThirdPartySecurity      `yaml:"third_party_security" json:"third_party_security"`
}

// Clone returns a deep copy of p. Mutating the copy never affects p.
func (p *Policy) Clone() *Policy {
	if p == nil {
		return nil
	}
	out := &Policy{
		CSP:                p.CSP.Clone(),
		SecurityHeaders:    p.SecurityHeaders.Clone(),
		RateLimits:         p.RateLimits.Clone(),
		ValidationRules:    p.ValidationRules.Clone(),
		UploadRestrictions: p.UploadRestrictions.Clone(),
		AuthSecurity:       p.AuthSecurity.Clone(),
		APISecurity:        p.APISecurity.Clone(),
		DataProtection:     p.DataProtection.Clone(),
		SecurityMonitoring: p.SecurityMonitoring.Clone(),
		ThirdPartySecurity: p.ThirdPartySecurity.Clone(),
	}
	if p.Overlays != nil {
		out.Overlays = make(map[Environment]Overlay, len(p.Overlays))
		for env, o := range p.Overlays {
			out.Overlays[env] = o.Clone()
		}
	}
	return out
}

// Overlay returns a copy of the overlay for env. Production and
// environments without an overlay yield an empty Overlay.
func (p *Policy) Overlay(env Environment) Overlay {
	return p.Overlays[env].Clone()
}

// Section returns a deep copy of the named section as its typed value:
// CSP, SecurityHeaders, Overlay, RateLimits, ValidationRules,
// UploadRestrictions, AuthSecurity, APISecurity, DataProtection,
// SecurityMonitoring or ThirdPartySecurity.
func (p *Policy) Section(name SectionName) (any, error) {
	switch name {
	case SectionCSP:
		return p.CSP.Clone(), nil
	case SectionSecurityHeaders:
		return p.SecurityHeaders.Clone(), nil
	case SectionDevelopmentOverrides:
		return p.Overlay(Development), nil
	case SectionStagingOverrides:
		return p.Overlay(Staging), nil
	case SectionRateLimits:
		return p.RateLimits.Clone(), nil
	case SectionValidationRules:
		return p.ValidationRules.Clone(), nil
	case SectionUploadRestrictions:
		return p.UploadRestrictions.Clone(), nil
	case SectionAuthSecurity:
		return p.AuthSecurity.Clone(), nil
	case SectionAPISecurity:
		return p.APISecurity.Clone(), nil
	case SectionDataProtection:
		return p.DataProtection.Clone(), nil
	case SectionSecurityMonitoring:
		return p.SecurityMonitoring.Clone(), nil
	case SectionThirdPartySecurity:
		return p.ThirdPartySecurity.Clone(), nil
	}
	return nil, &UnknownSectionError{Name: string(name)}
}

// HeaderSet returns the response headers the policy prescribes: the
// security headers plus Content-Security-Policy serialized from the CSP
// section.
func (p *Policy) HeaderSet() map[string]string {
	out := make(map[string]string, len(p.SecurityHeaders)+1)
	for k, v := range p.SecurityHeaders {
		out[k] = v
	}
	if len(p.CSP) > 0 {
		out[HeaderContentSecurityPolicy] = p.CSP.String()
	}
	return out
}

// HeaderContentSecurityPolicy is the CSP response header name.
const HeaderContentSecurityPolicy = "Content-Security-Policy"
