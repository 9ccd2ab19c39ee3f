package trash

import (
	"context"

	"trash/pkg/trash/changeset"
	"trash/pkg/trash/schema"
	"trash/pkg/trash/store"
)

// Discard stamps discarded_at with the current UTC time, truncated to whole
// seconds, and commits. The stamp is added to whatever the intent already
// changes. Discarding a discarded record stamps it again.
//
// A changeset that fails validation comes back as *changeset.InvalidError[T]
// holding the original errors and the discard change.
func (r *Repo[T]) Discard(ctx context.Context, intent changeset.Intent[T], opts ...store.Option) (T, error) {
	return r.commit(ctx, ActionDiscard, intent, r.discardTime(), opts...)
}

// Restore clears discarded_at and commits. Restoring a kept record writes
// NULL again and succeeds.
func (r *Repo[T]) Restore(ctx context.Context, intent changeset.Intent[T], opts ...store.Option) (T, error) {
	return r.commit(ctx, ActionRestore, intent, nil, opts...)
}

// MustDiscard is Discard that panics on failure. A validation failure panics
// with *InvalidChangesetError[T]; any other error panics as is.
func (r *Repo[T]) MustDiscard(ctx context.Context, intent changeset.Intent[T], opts ...store.Option) T {
	out, err := r.Discard(ctx, intent, opts...)
	return mustCommit(ActionDiscard, out, err)
}

// MustRestore is Restore that panics on failure, like MustDiscard.
func (r *Repo[T]) MustRestore(ctx context.Context, intent changeset.Intent[T], opts ...store.Option) T {
	out, err := r.Restore(ctx, intent, opts...)
	return mustCommit(ActionRestore, out, err)
}

// DiscardEntity discards a record as it stands.
func (r *Repo[T]) DiscardEntity(ctx context.Context, entity T, opts ...store.Option) (T, error) {
	return r.Discard(ctx, changeset.FromEntity(entity), opts...)
}

// RestoreEntity restores a record as it stands.
func (r *Repo[T]) RestoreEntity(ctx context.Context, entity T, opts ...store.Option) (T, error) {
	return r.Restore(ctx, changeset.FromEntity(entity), opts...)
}

// DiscardChangeset discards cs together with its pending changes.
// cs itself is not modified.
func (r *Repo[T]) DiscardChangeset(ctx context.Context, cs *changeset.Changeset[T], opts ...store.Option) (T, error) {
	return r.Discard(ctx, changeset.FromChangeset(cs), opts...)
}

// RestoreChangeset restores cs together with its pending changes.
func (r *Repo[T]) RestoreChangeset(ctx context.Context, cs *changeset.Changeset[T], opts ...store.Option) (T, error) {
	return r.Restore(ctx, changeset.FromChangeset(cs), opts...)
}

func (r *Repo[T]) commit(ctx context.Context, action Action, intent changeset.Intent[T], value any, opts ...store.Option) (T, error) {
	cs := intent.Changeset().Put(schema.ColumnDiscardedAt, value)
	log := r.log.WithContext(ctx)

	out, err := r.ds.Update(ctx, cs, opts...)
	if err != nil {
		if invalid, ok := changeset.AsInvalid[T](err); ok {
			log.Warnw("changeset rejected",
				"action", action,
				"intent", intent.Kind(),
				"errors", invalid.Changeset.Errors(),
			)
		}
		var zero T
		return zero, err
	}

	log.Debugw("trash action committed",
		"action", action,
		"intent", intent.Kind(),
		"fields", cs.Fields(),
	)
	return out, nil
}

func mustCommit[T any](action Action, out T, err error) T {
	if err == nil {
		return out
	}
	if invalid, ok := changeset.AsInvalid[T](err); ok {
		panic(&InvalidChangesetError[T]{Action: action, Changeset: invalid.Changeset})
	}
	panic(err)
}
