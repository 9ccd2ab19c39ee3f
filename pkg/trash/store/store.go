// Package store declares DataStore, the persistence capability the trash
// repository delegates every read and write to.
package store

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks DataStore

import (
	"context"

	"trash/pkg/trash/changeset"
	"trash/pkg/trash/query"
)

// Clauses are column = value matches, combined with AND.
type Clauses map[string]any

// DataStore executes queries for records of type T.
//
// Optional single-result reads report absence with ok == false. Required reads
// fail with NOT_FOUND when nothing matches. Single-result reads fail with
// MULTIPLE_RESULTS when more than one row matches.
type DataStore[T any] interface {
	All(ctx context.Context, q query.Query, opts ...Option) ([]T, error)
	Exists(ctx context.Context, q query.Query, opts ...Option) (bool, error)

	Get(ctx context.Context, q query.Query, id any, opts ...Option) (T, bool, error)
	GetRequired(ctx context.Context, q query.Query, id any, opts ...Option) (T, error)

	GetBy(ctx context.Context, q query.Query, clauses Clauses, opts ...Option) (T, bool, error)
	GetByRequired(ctx context.Context, q query.Query, clauses Clauses, opts ...Option) (T, error)

	One(ctx context.Context, q query.Query, opts ...Option) (T, bool, error)
	OneRequired(ctx context.Context, q query.Query, opts ...Option) (T, error)

	// Update commits cs. An invalid changeset is returned as
	// *changeset.InvalidError[T] without touching storage.
	Update(ctx context.Context, cs *changeset.Changeset[T], opts ...Option) (T, error)
}

// Options tune a single DataStore call.
type Options struct {
	// Prefix qualifies the table with a schema name.
	Prefix string
	// ForUpdate locks selected rows until the surrounding transaction ends.
	ForUpdate bool
}

// Option mutates Options.
type Option func(*Options)

// WithPrefix runs the call against the table in schema.
func WithPrefix(schema string) Option {
	return func(o *Options) {
		o.Prefix = schema
	}
}

// ForUpdate appends FOR UPDATE to reads.
func ForUpdate() Option {
	return func(o *Options) {
		o.ForUpdate = true
	}
}

// Apply folds opts into Options. Nil options are skipped.
func Apply(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
