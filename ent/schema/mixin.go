// Package schema contains Ent schema definitions for trashable entities.
//
// The tables are created by the embedded golang-migrate migrations; these
// schemas describe the same columns for code that reads them through ent.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"

	trashschema "trash/pkg/trash/schema"
)

var _ ent.Mixin = (*TrashMixin)(nil)

// TrashMixin adds the nullable discarded_at timestamp. A nil value means the
// row is kept. The computed "discarded" flag is not a column and is not declared.
type TrashMixin struct {
	mixin.Schema
}

// Fields of the TrashMixin.
func (TrashMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Time(trashschema.ColumnDiscardedAt).
			Comment("soft-delete timestamp, null while kept").
			Optional().
			Nillable(),
	}
}

// Indexes of the TrashMixin.
func (TrashMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields(trashschema.ColumnDiscardedAt),
	}
}

// TimeMixin adds an immutable created_at.
type TimeMixin struct {
	mixin.Schema
}

// Fields of the TimeMixin.
func (TimeMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Time("created_at").
			Default(nowUTC).
			Immutable(),
	}
}
