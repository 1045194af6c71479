package services

import (
	"context"

	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/remote/docstore"
	"github.com/eshmelev/dropspace/internal/remote/objectstore"
	"github.com/eshmelev/dropspace/internal/views"
)

// ownerListLimit caps per-owner listings.
const ownerListLimit = 100

// Query reads document records from the remote store and maintains the
// global document view.
type Query struct {
	config  *sc.Config
	docs    docstore.Store
	objects objectstore.Store
	allDocs *views.View[[]*models.DocumentRecord]
	log     logging.Logger
}

func NewQuery(
	config *sc.Config,
	docs docstore.Store,
	objects objectstore.Store,
	allDocs *views.View[[]*models.DocumentRecord],
	log logging.Logger,
) *Query {
	return &Query{config: config, docs: docs, objects: objects, allDocs: allDocs, log: log}
}

// ByOwner lists the owner's documents, capped at ownerListLimit.
func (q *Query) ByOwner(ctx context.Context, ownerID string) (*docstore.ListResult, error) {
	return q.docs.List(ctx, q.config.DatabaseID, q.config.CollectionID,
		docstore.Equal("owner_id", ownerID), docstore.Limit(ownerListLimit))
}

// ByID fetches one document record. An empty id short-circuits to (nil,
// nil) without touching the remote store.
func (q *Query) ByID(ctx context.Context, id string) (*models.DocumentRecord, error) {
	if id == "" {
		return nil, nil
	}
	return q.docs.Get(ctx, q.config.DatabaseID, q.config.CollectionID, id)
}

// All refreshes the global document view from the remote store. The return
// value is the view as it stood before the refresh; subscribers observe the
// fresh set.
func (q *Query) All(ctx context.Context) ([]*models.DocumentRecord, error) {
	result, err := q.docs.List(ctx, q.config.DatabaseID, q.config.CollectionID)
	if err != nil {
		return nil, err
	}
	previous := q.allDocs.Get()
	q.allDocs.Set(result.Documents)
	return previous, nil
}

// ListBucket enumerates the raw objects of a bucket.
func (q *Query) ListBucket(ctx context.Context, bucket string) ([]objectstore.ObjectInfo, error) {
	return q.objects.List(ctx, bucket)
}
