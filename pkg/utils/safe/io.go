package safe

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/secmon-lab/fmea/pkg/utils/logging"
)

// Close closes closer and logs the error, if any. nil is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs the error, if any. Used for response bodies
// where the status line is already sent.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write", slog.Any("error", err), slog.Int("size", len(data)))
	}
}

// Copy copies src to dst and logs the error, if any.
func Copy(ctx context.Context, dst io.Writer, src io.Reader) {
	if _, err := io.Copy(dst, src); err != nil {
		logging.From(ctx).Warn("failed to copy", slog.Any("error", err))
	}
}

// Remove deletes path. A missing file is not an error.
func Remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.From(ctx).Warn("failed to remove file", slog.Any("error", err), slog.String("path", path))
	}
}
