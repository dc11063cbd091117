package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/repository/firestore"
	"github.com/secmon-lab/fmea/pkg/repository/jsonfile"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendJSON      = "json"
	BackendFirestore = "firestore"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	dataFile         string
	projectID        string
	databaseID       string
	collectionPrefix string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository backend type (memory, json or firestore)",
			Value:       BackendJSON,
			Category:    "Repository",
			Sources:     cli.EnvVars("FMEA_REPOSITORY"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "data-file",
			Usage:       "Data file of the json backend",
			Value:       "fmea.json",
			Category:    "Repository",
			Sources:     cli.EnvVars("FMEA_DATA_FILE"),
			Destination: &r.dataFile,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("FMEA_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("FMEA_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix of Firestore collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("FMEA_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return repo, nil

	case BackendJSON:
		if r.dataFile == "" {
			return nil, goerr.New("data-file is required when using json backend")
		}
		repo, err := jsonfile.New(ctx, r.dataFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize json file repository")
		}
		logging.Default().Info("Using JSON file repository", "path", r.dataFile)
		return repo, nil

	case BackendMemory:
		logging.Default().Info("Using in-memory repository (data is lost on exit)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown repository backend", goerr.V(BackendKey, r.backend))
	}
}
