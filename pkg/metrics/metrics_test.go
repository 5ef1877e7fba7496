package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

func TestPolicyCollectorRateLimits(t *testing.T) {
	c := NewPolicyCollector(registry.MustNew(policy.Baseline()))

	expected := `
# HELP security_policy_rate_limit_max Maximum requests per window for each named limiter
# TYPE security_policy_rate_limit_max gauge
security_policy_rate_limit_max{limiter="api"} 100
security_policy_rate_limit_max{limiter="auth"} 5
security_policy_rate_limit_max{limiter="upload"} 20
# HELP security_policy_rate_limit_window_seconds Window length in seconds for each named limiter
# TYPE security_policy_rate_limit_window_seconds gauge
security_policy_rate_limit_window_seconds{limiter="api"} 900
security_policy_rate_limit_window_seconds{limiter="auth"} 900
security_policy_rate_limit_window_seconds{limiter="upload"} 3600
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"security_policy_rate_limit_max",
		"security_policy_rate_limit_window_seconds",
	)
	assert.NoError(t, err)
}

func TestPolicyCollectorScalars(t *testing.T) {
	c := NewPolicyCollector(registry.MustNew(policy.Baseline()))

	expected := `
# HELP security_policy_failed_login_threshold Failed logins before a security alert is raised
# TYPE security_policy_failed_login_threshold gauge
security_policy_failed_login_threshold 10
# HELP security_policy_csp_directives Number of Content-Security-Policy directives
# TYPE security_policy_csp_directives gauge
security_policy_csp_directives 12
# HELP security_policy_upload_max_bytes Maximum accepted upload size in bytes
# TYPE security_policy_upload_max_bytes gauge
security_policy_upload_max_bytes 5242880
# HELP security_policy_pii_fields Number of fields classified as personally identifiable
# TYPE security_policy_pii_fields gauge
security_policy_pii_fields 5
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"security_policy_failed_login_threshold",
		"security_policy_csp_directives",
		"security_policy_upload_max_bytes",
		"security_policy_pii_fields",
	)
	assert.NoError(t, err)
}

func TestPolicyCollectorEnvironmentInfo(t *testing.T) {
	testCases := []struct {
		env  string
		want string
	}{
		{"development", "development"},
		{"staging", "staging"},
		{"production", "production"},
	}

	base := registry.MustNew(policy.Baseline())
	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			r, err := registry.Resolve(base, tc.env)
			require.NoError(t, err)

			expected := `
# HELP security_policy_info Effective security policy, labelled by environment
# TYPE security_policy_info gauge
security_policy_info{environment="` + tc.want + `"} 1
`
			err = testutil.CollectAndCompare(NewPolicyCollector(r), strings.NewReader(expected), "security_policy_info")
			assert.NoError(t, err)
		})
	}
}

func TestPolicyCollectorCount(t *testing.T) {
	c := NewPolicyCollector(registry.MustNew(policy.Baseline()))
	// info + 3 limiter max + 3 limiter windows + 4 scalars
	assert.Equal(t, 11, testutil.CollectAndCount(c))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics(registry.MustNew(policy.Baseline()), logger.Discard())

	extra := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "security_policy_lookups_total",
		Help: "Section lookups",
	})
	m.AddCustomMetric(extra)
	extra.Add(3)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `security_policy_info{environment="production"} 1`)
	assert.Contains(t, string(body), "security_policy_lookups_total 3")
}

func TestMetricsGatherer(t *testing.T) {
	m := NewMetrics(registry.MustNew(policy.Baseline()), nil)

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"security_policy_info",
		"security_policy_rate_limit_max",
		"security_policy_rate_limit_window_seconds",
		"security_policy_failed_login_threshold",
		"security_policy_csp_directives",
		"security_policy_upload_max_bytes",
		"security_policy_pii_fields",
	}, names)
}
