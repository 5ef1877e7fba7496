package cli

import (
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/security_policy/pkg/metrics"
)

// MetricsCommand prints or serves the policy gauges.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Print the policy metrics in Prometheus text format, or serve them",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "listen",
				Usage:   "Serve /metrics on this port until interrupted instead of printing",
				EnvVars: []string{"METRICS_PORT"},
			},
		},
		Action: metricsAction,
	}
}

func metricsAction(ctx *cli.Context) error {
	log := getLogger(ctx)
	r, err := getRegistry(ctx)
	if err != nil {
		return err
	}
	m := metrics.NewMetrics(r, log)

	if port := ctx.Int("listen"); port > 0 {
		return m.Listen(ctx.Context, port)
	}

	families, err := m.Gatherer().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(ctx.App.Writer, mf); err != nil {
			return err
		}
	}
	return nil
}
