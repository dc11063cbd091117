package interfaces

import "context"

// ReportUploader stores a rendered report outside the server and returns its location
type ReportUploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}
