package trash

import (
	"context"

	"trash/pkg/trash/query"
	"trash/pkg/trash/store"
)

// Every read below filters q with WithDiscarded or WithKept and hands the
// result to the DataStore method of the same name. Results and errors are
// returned unchanged.

// AllDiscarded returns every discarded row matching q.
func (r *Repo[T]) AllDiscarded(ctx context.Context, q query.Query, opts ...store.Option) ([]T, error) {
	return r.ds.All(ctx, WithDiscarded(q), opts...)
}

// AllKept returns every kept row matching q.
func (r *Repo[T]) AllKept(ctx context.Context, q query.Query, opts ...store.Option) ([]T, error) {
	return r.ds.All(ctx, WithKept(q), opts...)
}

// ExistsDiscarded reports whether any discarded row matches q.
func (r *Repo[T]) ExistsDiscarded(ctx context.Context, q query.Query, opts ...store.Option) (bool, error) {
	return r.ds.Exists(ctx, WithDiscarded(q), opts...)
}

// ExistsKept reports whether any kept row matches q.
func (r *Repo[T]) ExistsKept(ctx context.Context, q query.Query, opts ...store.Option) (bool, error) {
	return r.ds.Exists(ctx, WithKept(q), opts...)
}

// GetDiscarded looks up a discarded row by id; the bool is false when none matches.
func (r *Repo[T]) GetDiscarded(ctx context.Context, q query.Query, id any, opts ...store.Option) (T, bool, error) {
	return r.ds.Get(ctx, WithDiscarded(q), id, opts...)
}

// GetKept looks up a kept row by id; the bool is false when none matches.
func (r *Repo[T]) GetKept(ctx context.Context, q query.Query, id any, opts ...store.Option) (T, bool, error) {
	return r.ds.Get(ctx, WithKept(q), id, opts...)
}

// GetDiscardedRequired fails with NOT_FOUND when id is missing or kept.
func (r *Repo[T]) GetDiscardedRequired(ctx context.Context, q query.Query, id any, opts ...store.Option) (T, error) {
	return r.ds.GetRequired(ctx, WithDiscarded(q), id, opts...)
}

// GetKeptRequired fails with NOT_FOUND when id is missing or discarded.
func (r *Repo[T]) GetKeptRequired(ctx context.Context, q query.Query, id any, opts ...store.Option) (T, error) {
	return r.ds.GetRequired(ctx, WithKept(q), id, opts...)
}

// GetByDiscarded returns the discarded row matching clauses, if any.
func (r *Repo[T]) GetByDiscarded(ctx context.Context, q query.Query, clauses store.Clauses, opts ...store.Option) (T, bool, error) {
	return r.ds.GetBy(ctx, WithDiscarded(q), clauses, opts...)
}

// GetByKept returns the kept row matching clauses, if any.
func (r *Repo[T]) GetByKept(ctx context.Context, q query.Query, clauses store.Clauses, opts ...store.Option) (T, bool, error) {
	return r.ds.GetBy(ctx, WithKept(q), clauses, opts...)
}

// GetByDiscardedRequired fails with NOT_FOUND when no discarded row matches clauses.
func (r *Repo[T]) GetByDiscardedRequired(ctx context.Context, q query.Query, clauses store.Clauses, opts ...store.Option) (T, error) {
	return r.ds.GetByRequired(ctx, WithDiscarded(q), clauses, opts...)
}

// GetByKeptRequired fails with NOT_FOUND when no kept row matches clauses.
func (r *Repo[T]) GetByKeptRequired(ctx context.Context, q query.Query, clauses store.Clauses, opts ...store.Option) (T, error) {
	return r.ds.GetByRequired(ctx, WithKept(q), clauses, opts...)
}

// OneDiscarded returns the only discarded row matching q; several matches are an error.
func (r *Repo[T]) OneDiscarded(ctx context.Context, q query.Query, opts ...store.Option) (T, bool, error) {
	return r.ds.One(ctx, WithDiscarded(q), opts...)
}

// OneKept returns the only kept row matching q; several matches are an error.
func (r *Repo[T]) OneKept(ctx context.Context, q query.Query, opts ...store.Option) (T, bool, error) {
	return r.ds.One(ctx, WithKept(q), opts...)
}

// OneDiscardedRequired fails with NOT_FOUND when no discarded row matches q.
func (r *Repo[T]) OneDiscardedRequired(ctx context.Context, q query.Query, opts ...store.Option) (T, error) {
	return r.ds.OneRequired(ctx, WithDiscarded(q), opts...)
}

// OneKeptRequired fails with NOT_FOUND when no kept row matches q.
func (r *Repo[T]) OneKeptRequired(ctx context.Context, q query.Query, opts ...store.Option) (T, error) {
	return r.ds.OneRequired(ctx, WithKept(q), opts...)
}
