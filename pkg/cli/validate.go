package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the default project settings of a configuration file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if appCfg.Path() == "" {
				return goerr.New("--config is required")
			}

			file, err := config.LoadFile(appCfg.Path())
			if err != nil {
				return err
			}

			msgs := file.Validate()
			printValidation(c.Root().Writer, appCfg.Path(), msgs)
			if len(msgs) > 0 {
				return goerr.Wrap(config.ErrInvalidConfig, fmt.Sprintf("%d problem(s) found", len(msgs)),
					goerr.V(config.ConfigPathKey, appCfg.Path()))
			}
			return nil
		},
	}
}

func printValidation(w io.Writer, path string, msgs []string) {
	if len(msgs) == 0 {
		_, _ = color.New(color.FgGreen, color.Bold).Fprintf(w, "✔ %s: settings are valid\n", path)
		return
	}

	_, _ = color.New(color.FgRed, color.Bold).Fprintf(w, "✘ %s: %d problem(s)\n", path, len(msgs))
	bullet := color.New(color.FgYellow)
	for _, msg := range msgs {
		_, _ = bullet.Fprint(w, "  - ")
		_, _ = fmt.Fprintln(w, msg)
	}
}
