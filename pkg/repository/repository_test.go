package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/repository/firestore"
	"github.com/secmon-lab/fmea/pkg/repository/jsonfile"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
)

type repoFactory func(t *testing.T) interfaces.Repository

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newJSONFileRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := jsonfile.New(context.Background(), filepath.Join(t.TempDir(), "fmea.json"),
		jsonfile.WithFlushDelay(10*time.Millisecond))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

// runAllBackends runs fn against every repository implementation
func runAllBackends(t *testing.T, fn func(t *testing.T, newRepo repoFactory)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, newMemoryRepository)
	})
	t.Run("jsonfile", func(t *testing.T) {
		fn(t, newJSONFileRepository)
	})
	t.Run("firestore", func(t *testing.T) {
		fn(t, newFirestoreRepository)
	})
}
