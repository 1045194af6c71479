// Package docstore defines the remote structured-record storage contract:
// collections of field-keyed document records addressed by (database,
// collection, id), with equality filters and a result-count limit.
package docstore

import (
	"context"

	"github.com/eshmelev/dropspace/internal/models"
)

// DefaultListLimit bounds unfiltered listings, mirroring the remote
// service's default page size.
const DefaultListLimit = 25

// ListOption narrows a List call.
type ListOption func(*Query)

// Filter is one equality constraint of a List call.
type Filter struct {
	Field string
	Value any
}

// Query is the resolved form of a List call's options. Adapters (and test
// doubles) obtain it via ResolveOptions.
type Query struct {
	Filters []Filter
	Limit   int
}

// ResolveOptions folds opts into a Query, starting from the default limit.
func ResolveOptions(opts ...ListOption) Query {
	q := Query{Limit: DefaultListLimit}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Equal keeps only records whose field equals value. Fields outside the
// adapter's whitelist are rejected at query time.
func Equal(field string, value any) ListOption {
	return func(q *Query) {
		q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	}
}

// Limit caps the number of returned records.
func Limit(n int) ListOption {
	return func(q *Query) {
		q.Limit = n
	}
}

// ListResult is a page of records plus the total number of matches.
type ListResult struct {
	Total     int
	Documents []*models.DocumentRecord
}

// Patch holds the mutable document fields; nil pointers are left untouched.
type Patch struct {
	Public *bool
}

// Store is the document-store collaborator. It is the source of truth for
// document records; in-memory views over its results are caches.
type Store interface {
	Create(ctx context.Context, database, collection, id string, fields models.DocumentFields) (*models.DocumentRecord, error)
	Get(ctx context.Context, database, collection, id string) (*models.DocumentRecord, error)
	List(ctx context.Context, database, collection string, opts ...ListOption) (*ListResult, error)
	Update(ctx context.Context, database, collection, id string, patch Patch) (*models.DocumentRecord, error)
	Delete(ctx context.Context, database, collection, id string) error
}
