package changeset

// Kind tags what an Intent carries.
type Kind uint8

const (
	// KindEntity is a bare record; it becomes an empty changeset.
	KindEntity Kind = iota
	// KindChangeset is a pending changeset, possibly already invalid.
	KindChangeset
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindChangeset:
		return "changeset"
	default:
		return "unknown"
	}
}

// Intent is what a mutation is asked to change: either a record as it stands
// or a changeset with pending edits and validation state.
// The zero Intent is an entity intent over the zero T.
type Intent[T any] struct {
	kind   Kind
	entity T
	cs     *Changeset[T]
}

// FromEntity wraps a bare record.
func FromEntity[T any](entity T) Intent[T] {
	return Intent[T]{kind: KindEntity, entity: entity}
}

// FromChangeset wraps a pending changeset. A nil changeset behaves like an
// empty one over the zero T.
func FromChangeset[T any](cs *Changeset[T]) Intent[T] {
	return Intent[T]{kind: KindChangeset, cs: cs}
}

// Kind reports which variant the intent holds.
func (i Intent[T]) Kind() Kind {
	return i.kind
}

// Changeset normalizes the intent. An entity yields a fresh, empty changeset.
// A changeset is cloned, so its changes and errors carry over while the
// caller's copy is left untouched.
func (i Intent[T]) Changeset() *Changeset[T] {
	switch i.kind {
	case KindChangeset:
		if i.cs == nil {
			var zero T
			return New(zero)
		}
		return i.cs.Clone()
	default:
		return New(i.entity)
	}
}
