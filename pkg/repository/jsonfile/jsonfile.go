// Package jsonfile persists the in-memory repository to a single JSON file.
// Mutations mark the store dirty; a background writer saves the file after a
// short delay and Close writes any pending change.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
	"github.com/secmon-lab/fmea/pkg/utils/errutil"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
)

const DefaultFlushDelay = 500 * time.Millisecond

// ErrUnsupportedVersion is returned when the data file was written by a newer format
var ErrUnsupportedVersion = errors.New("unsupported data file version")

type Repository struct {
	*memory.Memory

	path  string
	delay time.Duration

	modified atomic.Bool
	dirty    chan struct{}
	stop     chan struct{}
	done     chan struct{}
	saveMu   sync.Mutex
	closed   sync.Once
}

var _ interfaces.Repository = &Repository{}

type Option func(*Repository)

// WithFlushDelay sets how long the writer waits after a change before saving
func WithFlushDelay(d time.Duration) Option {
	return func(r *Repository) {
		r.delay = d
	}
}

// New loads path when it exists and starts the background writer
func New(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	r := &Repository{
		path:  path,
		delay: DefaultFlushDelay,
		dirty: make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Memory = memory.New(memory.WithChangeHook(r.markDirty))

	if err := r.load(); err != nil {
		return nil, err
	}

	go r.run(logging.With(context.WithoutCancel(ctx), logging.From(ctx).With("path", path)))

	return r, nil
}

// Path returns the data file location
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to read data file", goerr.V("path", r.path))
	}

	var f fileRecord
	if err := json.Unmarshal(data, &f); err != nil {
		return goerr.Wrap(err, "failed to parse data file", goerr.V("path", r.path))
	}
	if f.Version > fileVersion {
		return goerr.Wrap(ErrUnsupportedVersion, "data file is newer than this build",
			goerr.V("path", r.path),
			goerr.V("version", f.Version))
	}

	r.Memory.Restore(f.toSnapshot())
	return nil
}

// markDirty is called under the memory store lock and must not block
func (r *Repository) markDirty() {
	r.modified.Store(true)
	select {
	case r.dirty <- struct{}{}:
	default:
	}
}

func (r *Repository) run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			return
		case <-r.dirty:
		}

		select {
		case <-r.stop:
			return
		case <-time.After(r.delay):
		}

		if err := r.Flush(ctx); err != nil {
			_ = errutil.Handle(ctx, err, "failed to save data file")
			r.markDirty()
		}
	}
}

// Flush writes the current state when it changed since the last save
func (r *Repository) Flush(ctx context.Context) error {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	if !r.modified.Swap(false) {
		return nil
	}

	data, err := json.MarshalIndent(toFileRecord(r.Memory.Snapshot()), "", "  ")
	if err != nil {
		r.modified.Store(true)
		return goerr.Wrap(err, "failed to encode data file")
	}

	if err := writeFileAtomic(ctx, r.path, data); err != nil {
		r.modified.Store(true)
		return err
	}

	logging.From(ctx).Debug("data file saved", "path", r.path, "bytes", len(data))
	return nil
}

// Close stops the background writer and saves pending changes
func (r *Repository) Close() error {
	var err error
	r.closed.Do(func() {
		close(r.stop)
		<-r.done
		err = r.Flush(context.Background())
	})
	return err
}
