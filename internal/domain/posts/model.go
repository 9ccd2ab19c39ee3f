// Package posts is a trashable blog post domain built on the trash repository.
package posts

import (
	"strings"
	"time"
	"unicode/utf8"

	"trash/internal/core/apperror"
	"trash/internal/core/id"
	"trash/pkg/trash/changeset"
	"trash/pkg/trash/schema"
)

// TableName is the posts table.
const TableName = "posts"

// MaxTitleLength bounds Title in runes.
const MaxTitleLength = 200

// Post is a blog post that can be discarded and restored.
type Post struct {
	ID        id.ID     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Author    *string   `db:"author" json:"author,omitempty"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	schema.Fields
}

// Params are the editable fields of a post. Nil fields are left unchanged.
type Params struct {
	Title  *string
	Author *string
	Body   *string
}

// IsEmpty reports whether no field is set.
func (p Params) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Body == nil
}

// Changeset records params against p and validates the result.
// Title and author are required.
func (p *Post) Changeset(params Params) *changeset.Changeset[*Post] {
	cs := changeset.New(p)

	if params.Title != nil {
		cs.Put("title", strings.TrimSpace(*params.Title))
	}
	if params.Author != nil {
		author := strings.TrimSpace(*params.Author)
		if author == "" {
			cs.Put("author", nil)
		} else {
			cs.Put("author", author)
		}
	}
	if params.Body != nil {
		cs.Put("body", *params.Body)
	}

	return cs.
		ValidateRequired("title", "author").
		ValidateChange("title", validateTitleLength)
}

func validateTitleLength(value any) string {
	if s, ok := value.(string); ok && utf8.RuneCountInString(s) > MaxTitleLength {
		return "is too long"
	}
	return ""
}

// Scope selects which posts a read sees.
type Scope string

const (
	ScopeKept      Scope = "kept"
	ScopeDiscarded Scope = "discarded"
	ScopeAll       Scope = "all"
)

// ParseScope maps a query parameter to a Scope. Empty means kept.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeKept:
		return ScopeKept, nil
	case ScopeDiscarded:
		return ScopeDiscarded, nil
	case ScopeAll:
		return ScopeAll, nil
	default:
		return "", apperror.NewInvalidInput("unknown scope").
			WithDetail("scope", s).
			WithDetail("allowed", []Scope{ScopeKept, ScopeDiscarded, ScopeAll})
	}
}

// ListFilter controls List.
type ListFilter struct {
	Scope    Scope
	Computed bool
	Author   string
	Limit    int
	Offset   int
}

// DefaultListFilter lists the first page of kept posts.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Scope: ScopeKept,
		Limit: 50,
	}
}
