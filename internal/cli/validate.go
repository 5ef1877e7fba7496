package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
	"github.com/lewisedginton/security_policy/pkg/validation"
)

// ErrPolicyInvalid is returned by the validate command when the policy has
// at least one finding.
var ErrPolicyInvalid = errors.New("security policy is invalid")

// ValidateCommand validates the policy and lists every finding.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the security policy",
		Action:  validateAction,
	}
}

func validateAction(ctx *cli.Context) error {
	log := getLogger(ctx)

	p, err := loadPolicy(ctx)
	if err != nil {
		return err
	}

	log.Info("Validating security policy")
	err = validation.Validate(p)
	if err == nil {
		log.Info("Security policy validation passed")
		fmt.Fprintf(ctx.App.Writer, "policy is valid (%d sections)\n", len(policy.SectionNames()))
		return nil
	}

	findings := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		findings = merr.Errors
	}
	for _, finding := range findings {
		fmt.Fprintln(ctx.App.Writer, finding)
	}
	log.Error("Security policy validation failed", logger.IntField("findings", len(findings)))
	return fmt.Errorf("%w: %d finding(s)", ErrPolicyInvalid, len(findings))
}
