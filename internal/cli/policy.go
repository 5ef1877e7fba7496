package cli

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/security_policy/pkg/logger"
)

// SectionsCommand lists the section identifiers.
func SectionsCommand() *cli.Command {
	return &cli.Command{
		Name:   "sections",
		Usage:  "List policy section identifiers",
		Action: sectionsAction,
	}
}

func sectionsAction(ctx *cli.Context) error {
	r, err := getRegistry(ctx)
	if err != nil {
		return err
	}
	for _, name := range r.Sections() {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}

// ShowCommand prints one resolved section.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a resolved policy section",
		ArgsUsage: "<section>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "Output format (yaml, json)",
			},
		},
		Action: showAction,
	}
}

func showAction(ctx *cli.Context) error {
	log := getLogger(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("show expects exactly one section name, got %d", ctx.NArg())
	}
	name := ctx.Args().First()

	r, err := getRegistry(ctx)
	if err != nil {
		return err
	}
	section, err := r.Section(name)
	if err != nil {
		log.Error("Section lookup failed", logger.SectionField(name), logger.ErrorField(err))
		return err
	}
	log.Debug("Showing section",
		logger.SectionField(name),
		logger.EnvironmentField(string(r.Environment())),
	)
	return writeFormatted(ctx.App.Writer, ctx.String("format"), section)
}

// HeadersCommand prints the resolved response headers.
func HeadersCommand() *cli.Command {
	return &cli.Command{
		Name:   "headers",
		Usage:  "Print the resolved security response headers",
		Action: headersAction,
	}
}

func headersAction(ctx *cli.Context) error {
	r, err := getRegistry(ctx)
	if err != nil {
		return err
	}
	headers := r.HeaderSet()
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(ctx.App.Writer, "%s: %s\n", name, headers[name])
	}
	return nil
}
