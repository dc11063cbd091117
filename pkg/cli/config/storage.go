package config

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/service/export"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage holds the Cloud Storage bucket exported reports are copied to
type Storage struct {
	bucket string
	prefix string
}

func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-bucket",
			Usage:       "Cloud Storage bucket to store exported reports in",
			Category:    "Export",
			Sources:     cli.EnvVars("FMEA_EXPORT_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "export-prefix",
			Usage:       "Object name prefix in the export bucket",
			Value:       "reports",
			Category:    "Export",
			Sources:     cli.EnvVars("FMEA_EXPORT_PREFIX"),
			Destination: &s.prefix,
		},
	}
}

func (s *Storage) Enabled() bool {
	return s.bucket != ""
}

// Configure returns an uploader for the bucket, or nil when no bucket is set.
// The caller closes the uploader.
func (s *Storage) Configure(ctx context.Context) (*export.GCSUploader, error) {
	if !s.Enabled() {
		return nil, nil
	}
	uploader, err := export.NewGCSUploader(ctx, s.bucket, s.prefix)
	if err != nil {
		return nil, err
	}
	logging.Default().Info("Exported reports are stored in Cloud Storage", "bucket", s.bucket, "prefix", s.prefix)
	return uploader, nil
}
