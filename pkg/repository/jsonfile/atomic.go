package jsonfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/utils/safe"
)

// writeFileAtomic writes data to a temporary file in the same directory and
// renames it over path, so readers see either the old or the new content.
func writeFileAtomic(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("dir", dir))
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			safe.Remove(ctx, tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		safe.Close(ctx, tmp)
		return goerr.Wrap(err, "failed to write temp file", goerr.V("path", tmpPath))
	}
	if err := tmp.Sync(); err != nil {
		safe.Close(ctx, tmp)
		return goerr.Wrap(err, "failed to sync temp file", goerr.V("path", tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temp file", goerr.V("path", tmpPath))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return goerr.Wrap(err, "failed to replace data file", goerr.V("path", path))
	}
	committed = true

	return nil
}
