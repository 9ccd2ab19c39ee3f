// Package trash adds soft deletion to a DataStore-backed repository.
//
// Records embed schema.Fields and are never removed: Discard stamps
// discarded_at, Restore clears it. Reads come in Discarded and Kept variants
// that filter on discarded_at before delegating to the bound DataStore.
//
//	repo, err := trash.New[*Post](pgStore)
//	kept, err := repo.AllKept(ctx, query.From("posts"))
//	post, err = repo.DiscardEntity(ctx, post)
//
// Query helpers (WithDiscarded, WithKept, WithComputedProjection) only
// transform a query.Query and can be used on their own.
package trash
