package policy

import (
	"sort"
	"strings"
)

// CSP maps a Content-Security-Policy directive name to its ordered source
// tokens. A directive with no tokens is valueless, e.g.
// upgrade-insecure-requests.
type CSP map[string][]string

// cspDirectiveOrder is the canonical serialization order. Directives not in
// this list are appended in lexical order.
var cspDirectiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"media-src",
	"object-src",
	"frame-src",
	"child-src",
	"worker-src",
	"manifest-src",
	"base-uri",
	"form-action",
	"frame-ancestors",
	"upgrade-insecure-requests",
}

var knownDirectives = func() map[string]struct{} {
	m := make(map[string]struct{}, len(cspDirectiveOrder))
	for _, d := range cspDirectiveOrder {
		m[d] = struct{}{}
	}
	return m
}()

// KnownDirective reports whether name is a CSP directive this package
// recognises.
func KnownDirective(name string) bool {
	_, ok := knownDirectives[name]
	return ok
}

// Directives returns the directive names present in c in serialization
// order.
func (c CSP) Directives() []string {
	names := make([]string, 0, len(c))
	for _, d := range cspDirectiveOrder {
		if _, ok := c[d]; ok {
			names = append(names, d)
		}
	}
	var extra []string
	for d := range c {
		if !KnownDirective(d) {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// String serializes c as a single header value: directives joined by "; ",
// each directive followed by its space-joined tokens.
func (c CSP) String() string {
	parts := make([]string, 0, len(c))
	for _, d := range c.Directives() {
		tokens := c[d]
		if len(tokens) == 0 {
			parts = append(parts, d)
			continue
		}
		parts = append(parts, d+" "+strings.Join(tokens, " "))
	}
	return strings.Join(parts, "; ")
}

// Clone returns a deep copy of c.
func (c CSP) Clone() CSP {
	if c == nil {
		return nil
	}
	out := make(CSP, len(c))
	for k, v := range c {
		out[k] = cloneStrings(v)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
