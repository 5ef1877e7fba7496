package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/security_policy/pkg/httpsecurity"
	"github.com/lewisedginton/security_policy/pkg/logger"
	"github.com/lewisedginton/security_policy/pkg/policy"
)

// LimitsCommand prints the limiter parameters and upload bounds.
func LimitsCommand() *cli.Command {
	return &cli.Command{
		Name:   "limits",
		Usage:  "Print rate limits as token bucket parameters and upload bounds",
		Action: limitsAction,
	}
}

func limitsAction(ctx *cli.Context) error {
	log := getLogger(ctx)
	r, err := getRegistry(ctx)
	if err != nil {
		return err
	}
	specs, err := httpsecurity.Limits(r)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LIMITER\tWINDOW\tBURST\tREFILL/S")
	for _, s := range specs {
		log.Debug("Rate limit",
			logger.StringField("limiter", s.Name),
			logger.DurationField("window", s.Window),
			logger.IntField("burst", s.Burst),
			logger.Field("refill_per_second", float64(s.Limit)),
		)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\n", s.Name, s.Window, humanize.Comma(int64(s.Burst)), float64(s.Limit))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	u := r.UploadRestrictions()
	size, err := policy.ParseSize(u.MaxFileSize)
	if err != nil {
		return err
	}
	log.Debug("Upload limit", logger.Int64Field("max_bytes", size))
	fmt.Fprintf(ctx.App.Writer, "\nmax upload: %s (%s bytes), %d files per upload\n",
		humanize.IBytes(uint64(size)), humanize.Comma(size), u.MaxFilesPerUpload)
	return nil
}
