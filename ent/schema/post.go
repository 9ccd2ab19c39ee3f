package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"trash/internal/core/id"
	"trash/internal/domain/posts"
)

// Post holds the schema definition for the posts table.
type Post struct {
	ent.Schema
}

// Mixin of the Post.
func (Post) Mixin() []ent.Mixin {
	return []ent.Mixin{
		TimeMixin{},
		TrashMixin{},
	}
}

// Fields of the Post.
func (Post) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", id.ID{}).
			Default(id.New).
			Immutable(),
		field.String("title").
			NotEmpty().
			MaxLen(posts.MaxTitleLength),
		field.String("author").
			Optional().
			Nillable(),
		field.Text("body").
			Default(""),
	}
}

// Indexes of the Post.
func (Post) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
