package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
)

type Firestore struct {
	client      *firestore.Client
	project     *projectRepository
	component   *componentRepository
	failureMode *failureModeRepository
	cause       *causeRepository
	effect      *effectRepository
	control     *controlRepository
	action      *actionRepository
}

var _ interfaces.Repository = &Firestore{}

type config struct {
	collectionPrefix string
}

type Option func(*config)

// WithCollectionPrefix prepends prefix + "_" to every collection name
func WithCollectionPrefix(prefix string) Option {
	return func(c *config) {
		c.collectionPrefix = prefix
	}
}

// New connects to Firestore. An empty databaseID selects the default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		client *firestore.Client
		err    error
	)
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	prefix := cfg.collectionPrefix
	return &Firestore{
		client:      client,
		project:     newProjectRepository(client, prefix),
		component:   newComponentRepository(client, prefix),
		failureMode: newFailureModeRepository(client, prefix),
		cause:       newCauseRepository(client, prefix),
		effect:      newEffectRepository(client, prefix),
		control:     newControlRepository(client, prefix),
		action:      newActionRepository(client, prefix),
	}, nil
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Component() interfaces.ComponentRepository {
	return f.component
}

func (f *Firestore) FailureMode() interfaces.FailureModeRepository {
	return f.failureMode
}

func (f *Firestore) Cause() interfaces.CauseRepository {
	return f.cause
}

func (f *Firestore) Effect() interfaces.EffectRepository {
	return f.effect
}

func (f *Firestore) Control() interfaces.ControlRepository {
	return f.control
}

func (f *Firestore) Action() interfaces.ActionRepository {
	return f.action
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
