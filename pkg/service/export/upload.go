package export

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/secmon-lab/fmea/pkg/utils/safe"
)

// GCSUploader stores rendered reports in a Cloud Storage bucket
type GCSUploader struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSUploader creates an uploader with application default credentials
func NewGCSUploader(ctx context.Context, bucket, prefix string) (*GCSUploader, error) {
	if bucket == "" {
		return nil, goerr.New("export bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}
	return &GCSUploader{client: client, bucket: bucket, prefix: prefix}, nil
}

// Upload writes data to <prefix>/<name> and returns its gs:// URL
func (u *GCSUploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	objectName := path.Join(u.prefix, name)
	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", u.bucket),
			goerr.V("object", objectName))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", u.bucket),
			goerr.V("object", objectName))
	}

	url := "gs://" + u.bucket + "/" + objectName
	logging.From(ctx).Info("report uploaded", "url", url, "size", len(data))
	return url, nil
}

func (u *GCSUploader) Close() error {
	if err := u.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
