package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/registry"
)

// ErrNotAllowed is returned by check when at least one value is outside the
// policy.
var ErrNotAllowed = errors.New("value not allowed by policy")

type membership struct {
	flag  string
	label string
	test  func(r *registry.Registry, value string) bool
}

var memberships = []membership{
	{
		flag:  "origin",
		label: "cors origin",
		test:  func(r *registry.Registry, v string) bool { return r.APISecurity().CORS.AllowsOrigin(v) },
	},
	{
		flag:  "upload-type",
		label: "upload type",
		test:  func(r *registry.Registry, v string) bool { return r.UploadRestrictions().AllowsType(v) },
	},
	{
		flag:  "pii-field",
		label: "pii field",
		test:  func(r *registry.Registry, v string) bool { return r.DataProtection().IsPII(v) },
	},
	{
		flag:  "audit-event",
		label: "audit event",
		test:  func(r *registry.Registry, v string) bool { return r.SecurityMonitoring().Audits(v) },
	},
}

// CheckCommand tests values against the allow-lists of the resolved policy.
func CheckCommand() *cli.Command {
	flags := make([]cli.Flag, 0, len(memberships))
	for _, m := range memberships {
		flags = append(flags, &cli.StringSliceFlag{
			Name:  m.flag,
			Usage: fmt.Sprintf("%s to check against the policy (repeatable)", m.label),
		})
	}
	return &cli.Command{
		Name:   "check",
		Usage:  "Check origins, upload types, PII fields and audit events against the policy",
		Flags:  flags,
		Action: checkAction,
	}
}

func checkAction(ctx *cli.Context) error {
	log := getLogger(ctx)
	r, err := getRegistry(ctx)
	if err != nil {
		return err
	}

	checked, denied := 0, 0
	for _, m := range memberships {
		for _, value := range ctx.StringSlice(m.flag) {
			ok := m.test(r, value)
			checked++
			verdict := "allowed"
			if !ok {
				denied++
				verdict = "denied"
			}
			log.Debug("Checked value",
				logger.StringField("kind", m.label),
				logger.StringField("value", value),
				logger.BoolField("allowed", ok),
			)
			fmt.Fprintf(ctx.App.Writer, "%s %s: %s\n", m.label, value, verdict)
		}
	}
	if checked == 0 {
		return errors.New("check expects at least one of --origin, --upload-type, --pii-field, --audit-event")
	}
	if denied > 0 {
		return fmt.Errorf("%d of %d: %w", denied, checked, ErrNotAllowed)
	}
	return nil
}
