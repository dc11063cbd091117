package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/cli/config"
	"github.com/secmon-lab/fmea/pkg/usecase"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/secmon-lab/fmea/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var input string
	var appCfg config.AppConfig
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "YAML project document to import",
			Required:    true,
			Destination: &input,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "import",
		Usage: "Create a project from a YAML document",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}

			// #nosec G304 - path is provided by CLI argument
			f, err := os.Open(input)
			if err != nil {
				return goerr.Wrap(err, "failed to open document", goerr.V("path", input))
			}
			defer safe.Close(ctx, f)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, usecase.WithDefaultSettings(settings))
			project, err := uc.Export.Import(ctx, f)
			if err != nil {
				return err
			}

			logging.Default().Info("Project imported", "project_id", project.ID, "name", project.Name)
			_, _ = fmt.Fprintln(c.Root().Writer, project.ID)
			return nil
		},
	}
}
