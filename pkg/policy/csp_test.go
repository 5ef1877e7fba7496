package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSPString(t *testing.T) {
	testCases := []struct {
		name string
		csp  CSP
		want string
	}{
		{
			name: "empty",
			csp:  CSP{},
			want: "",
		},
		{
			name: "canonical order regardless of insertion",
			csp: CSP{
				"object-src":  {"'none'"},
				"default-src": {"'self'"},
				"script-src":  {"'self'", "https://cdn.example.com"},
			},
			want: "default-src 'self'; script-src 'self' https://cdn.example.com; object-src 'none'",
		},
		{
			name: "valueless directive",
			csp: CSP{
				"default-src":               {"'self'"},
				"upgrade-insecure-requests": {},
			},
			want: "default-src 'self'; upgrade-insecure-requests",
		},
		{
			name: "unknown directives sorted last",
			csp: CSP{
				"sandbox":     {"allow-forms"},
				"default-src": {"'self'"},
				"report-to":   {"csp-endpoint"},
			},
			want: "default-src 'self'; report-to csp-endpoint; sandbox allow-forms",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.csp.String())
		})
	}
}

func TestCSPDirectives(t *testing.T) {
	csp := Baseline().CSP
	assert.Equal(t, []string{
		"default-src",
		"script-src",
		"style-src",
		"img-src",
		"font-src",
		"connect-src",
		"media-src",
		"object-src",
		"base-uri",
		"form-action",
		"frame-ancestors",
		"upgrade-insecure-requests",
	}, csp.Directives())
}

func TestCSPCloneIsIndependent(t *testing.T) {
	orig := CSP{"script-src": {"'self'"}}
	clone := orig.Clone()

	clone["script-src"][0] = "'none'"
	clone["script-src"] = append(clone["script-src"], "https://evil.example")
	clone["img-src"] = []string{"data:"}

	assert.Equal(t, CSP{"script-src": {"'self'"}}, orig)
	assert.Nil(t, CSP(nil).Clone())
}

func TestKnownDirective(t *testing.T) {
	assert.True(t, KnownDirective("default-src"))
	assert.True(t, KnownDirective("upgrade-insecure-requests"))
	assert.False(t, KnownDirective("Default-Src"))
	assert.False(t, KnownDirective("script-source"))
}
