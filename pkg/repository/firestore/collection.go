package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	fieldCreatedAt     = "created_at"
	fieldProjectID     = "project_id"
	fieldComponentID   = "component_id"
	fieldFailureModeID = "failure_mode_id"

	// Firestore allows at most 30 values in an "in" filter
	inQueryLimit = 30
)

// now is truncated to the precision Firestore stores
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// codec converts between a model and its Firestore document
type codec[K ~string, M any, D any] struct {
	name    string
	newID   func() K
	id      func(*M) K
	created func(*M) time.Time
	toDoc   func(*M) *D
	fromDoc func(*D) *M
	// touch sets the fields the repository owns
	touch func(m *M, id K, createdAt, updatedAt time.Time)
	// freeze copies fields an update must not change from existing
	freeze func(updated, existing *M)
}

// collection implements the CRUD part shared by every repository
type collection[K ~string, M any, D any] struct {
	client *firestore.Client
	path   string
	codec  codec[K, M, D]
}

func newCollection[K ~string, M any, D any](client *firestore.Client, prefix, name string, c codec[K, M, D]) *collection[K, M, D] {
	path := name
	if prefix != "" {
		path = prefix + "_" + name
	}
	return &collection[K, M, D]{
		client: client,
		path:   path,
		codec:  c,
	}
}

func (r *collection[K, M, D]) doc(id K) *firestore.DocumentRef {
	return r.client.Collection(r.path).Doc(string(id))
}

func (r *collection[K, M, D]) Create(ctx context.Context, m *M) (*M, error) {
	id := r.codec.id(m)
	if id == "" {
		id = r.codec.newID()
	}

	ts := now()
	created := r.codec.fromDoc(r.codec.toDoc(m))
	r.codec.touch(created, id, ts, ts)

	if _, err := r.doc(id).Set(ctx, r.codec.toDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create "+r.codec.name, goerr.V("id", id))
	}

	return created, nil
}

func (r *collection[K, M, D]) Get(ctx context.Context, id K) (*M, error) {
	if id == "" {
		return nil, goerr.Wrap(ErrNotFound, r.codec.name+" not found", goerr.V("id", id))
	}

	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, r.codec.name+" not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get "+r.codec.name, goerr.V("id", id))
	}

	var d D
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal "+r.codec.name, goerr.V("id", id))
	}
	return r.codec.fromDoc(&d), nil
}

func (r *collection[K, M, D]) Update(ctx context.Context, m *M) (*M, error) {
	id := r.codec.id(m)
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := r.codec.fromDoc(r.codec.toDoc(m))
	if r.codec.freeze != nil {
		r.codec.freeze(updated, existing)
	}
	r.codec.touch(updated, id, r.codec.created(existing), now())

	if _, err := r.doc(id).Set(ctx, r.codec.toDoc(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update "+r.codec.name, goerr.V("id", id))
	}

	return updated, nil
}

func (r *collection[K, M, D]) Delete(ctx context.Context, id K) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete "+r.codec.name, goerr.V("id", id))
	}
	return nil
}

func (r *collection[K, M, D]) query(ctx context.Context, q firestore.Query) ([]*M, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*M
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate "+r.codec.name)
		}

		var d D
		if err := snap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal "+r.codec.name, goerr.V("id", snap.Ref.ID))
		}
		out = append(out, r.codec.fromDoc(&d))
	}

	return out, nil
}

// listByParent returns documents whose parent field equals id, oldest first
func (r *collection[K, M, D]) listByParent(ctx context.Context, field, id string) ([]*M, error) {
	q := r.client.Collection(r.path).
		Where(field, "==", id).
		OrderBy(fieldCreatedAt, firestore.Asc)

	out, err := r.query(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list "+r.codec.name, goerr.V(field, id))
	}
	if out == nil {
		out = []*M{}
	}
	return out, nil
}

// listByParents queries in batches and groups the results by parent
func listByParents[P ~string, K ~string, M any, D any](ctx context.Context, r *collection[K, M, D], field string, ids []P, parent func(*M) P) (map[P][]*M, error) {
	result := make(map[P][]*M)

	for i := 0; i < len(ids); i += inQueryLimit {
		end := min(i+inQueryLimit, len(ids))

		batch := make([]string, 0, end-i)
		for _, id := range ids[i:end] {
			batch = append(batch, string(id))
		}

		q := r.client.Collection(r.path).
			Where(field, "in", batch).
			OrderBy(fieldCreatedAt, firestore.Asc)

		rows, err := r.query(ctx, q)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to batch list "+r.codec.name, goerr.V("count", len(batch)))
		}
		for _, m := range rows {
			p := parent(m)
			result[p] = append(result[p], m)
		}
	}

	return result, nil
}

// deleteByParent removes every document whose parent field equals id
func (r *collection[K, M, D]) deleteByParent(ctx context.Context, field, id string) error {
	iter := r.client.Collection(r.path).Where(field, "==", id).Documents(ctx)
	defer iter.Stop()

	bulkWriter := r.client.BulkWriter(ctx)

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate "+r.codec.name+" for deletion", goerr.V(field, id))
		}

		if _, err := bulkWriter.Delete(snap.Ref); err != nil {
			return goerr.Wrap(err, "failed to delete "+r.codec.name, goerr.V(field, id))
		}
	}

	bulkWriter.End()

	return nil
}
