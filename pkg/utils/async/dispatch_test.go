package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("runs after parent is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		release := make(chan struct{})
		async.Dispatch(ctx, "test", func(ctx context.Context) error {
			<-release
			done <- ctx.Err()
			return nil
		})
		cancel()
		close(release)

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("recovers from panic and error", func(t *testing.T) {
		done := make(chan struct{}, 2)
		async.Dispatch(context.Background(), "panic", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			panic("boom")
		})
		async.Dispatch(context.Background(), "error", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			return errors.New("failed")
		})

		for range 2 {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("handler did not run")
			}
		}
	})
}
