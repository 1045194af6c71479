package services

import (
	"context"

	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/remote/docstore"
	"github.com/eshmelev/dropspace/internal/remote/objectstore"
)

// Mutation removes documents and flips their visibility.
type Mutation struct {
	config  *sc.Config
	objects objectstore.Store
	docs    docstore.Store
	log     logging.Logger
}

func NewMutation(config *sc.Config, objects objectstore.Store, docs docstore.Store, log logging.Logger) *Mutation {
	return &Mutation{config: config, objects: objects, docs: docs, log: log}
}

// Delete removes the stored object first, then its metadata record. When
// the object deletion fails the record is left in place untouched.
func (m *Mutation) Delete(ctx context.Context, id string) error {
	if err := m.objects.Delete(ctx, m.config.S3Bucket, id); err != nil {
		return err
	}
	if err := m.docs.Delete(ctx, m.config.DatabaseID, m.config.CollectionID, id); err != nil {
		return err
	}
	m.log.Info(ctx, "document deleted", "id", id)
	return nil
}

// SetVisibility patches the record's public flag.
func (m *Mutation) SetVisibility(ctx context.Context, id string, public bool) error {
	_, err := m.docs.Update(ctx, m.config.DatabaseID, m.config.CollectionID, id, docstore.Patch{Public: &public})
	return err
}
