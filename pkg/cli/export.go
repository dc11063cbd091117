package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/cli/config"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/service/export"
	"github.com/secmon-lab/fmea/pkg/usecase"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var projectID string
	var format string
	var output string
	var repoCfg config.Repository
	var storageCfg config.Storage

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Project ID to export",
			Required:    true,
			Destination: &projectID,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Report format (xlsx, pdf, yaml)",
			Value:       string(export.FormatXLSX),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file. Defaults to the report file name; ignored when --export-bucket is set",
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export a project report to a file or the export bucket",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uploader, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize export bucket")
			}

			id := model.ProjectID(projectID)
			if uploader != nil {
				defer func() {
					if err := uploader.Close(); err != nil {
						logging.Default().Error("failed to close storage client", "error", err.Error())
					}
				}()
				uc := usecase.New(repo, usecase.WithUploader(uploader))
				url, err := uc.Export.Upload(ctx, id, f)
				if err != nil {
					return err
				}
				logging.Default().Info("Report exported", "url", url)
				return nil
			}

			// Export renders synchronously; without an uploader nothing runs in background
			uc := usecase.New(repo)
			result, err := uc.Export.Export(ctx, id, f)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = result.FileName
			}
			if err := os.WriteFile(path, result.Data, 0600); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
			}
			logging.Default().Info("Report exported", "path", path, "report_id", result.Report.ID, "size", len(result.Data))
			return nil
		},
	}
}
