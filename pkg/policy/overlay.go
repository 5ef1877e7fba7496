package policy

// Overlay is an environment specific partial policy. Each top-level key
// replaces the same key of the base section wholesale; token lists and
// header values are never unioned or merged.
type Overlay struct {
	CSP             CSP             `yaml:"csp_policy,omitempty" json:"csp_policy,omitempty"`
	SecurityHeaders SecurityHeaders `yaml:"security_headers,omitempty" json:"security_headers,omitempty"`
}

// Clone returns a deep copy of o.
func (o Overlay) Clone() Overlay {
	return Overlay{
		CSP:             o.CSP.Clone(),
		SecurityHeaders: o.SecurityHeaders.Clone(),
	}
}

// IsEmpty reports whether o changes nothing.
func (o Overlay) IsEmpty() bool {
	return len(o.CSP) == 0 && len(o.SecurityHeaders) == 0
}

// ApplyOverlay returns a deep copy of p with o applied by shallow, per-key
// replacement. p is not modified.
func (p *Policy) ApplyOverlay(o Overlay) *Policy {
	out := p.Clone()
	if out.CSP == nil && len(o.CSP) > 0 {
		out.CSP = make(CSP, len(o.CSP))
	}
	if out.SecurityHeaders == nil && len(o.SecurityHeaders) > 0 {
		out.SecurityHeaders = make(SecurityHeaders, len(o.SecurityHeaders))
	}
	for directive, tokens := range o.CSP {
		out.CSP[directive] = cloneStrings(tokens)
	}
	for name, value := range o.SecurityHeaders {
		out.SecurityHeaders[name] = value
	}
	return out
}
