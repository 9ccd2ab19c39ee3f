// Package schema declares the fields a trashable record carries and the
// db-tag reflection the rest of the trash packages share.
//
// Embed Fields in any struct mapped with "db" tags:
//
//	type Post struct {
//		ID    id.ID  `db:"id"`
//		Title string `db:"title"`
//		schema.Fields
//	}
package schema

import "time"

// Column names owned by the trash layer.
const (
	ColumnDiscardedAt = "discarded_at"
	ColumnDiscarded   = "discarded"
)

// Fields is the pair of trash fields.
//
// DiscardedAt is persisted; nil means the record is kept. Discarded is computed
// as "discarded_at IS NOT NULL" and is only populated when a query asks for the
// computed projection. It is never written.
type Fields struct {
	DiscardedAt *time.Time `db:"discarded_at" json:"discardedAt,omitempty"`
	Discarded   *bool      `db:"discarded" json:"discarded,omitempty" trash:"computed"`
}

// Trashable is implemented by every struct embedding Fields.
type Trashable interface {
	TrashFields() *Fields
}

// TrashFields exposes the embedded fields.
func (f *Fields) TrashFields() *Fields {
	return f
}

// IsDiscarded reports whether the record is soft-deleted.
// It reads DiscardedAt, never the computed flag.
func (f *Fields) IsDiscarded() bool {
	return f.DiscardedAt != nil
}
