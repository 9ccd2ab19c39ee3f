package schema

import (
	"reflect"
	"sync"
)

const (
	dbTag       = "db"
	trashTag    = "trash"
	tagComputed = "computed"
)

// fieldInfo contains pre-computed metadata about a struct field.
type fieldInfo struct {
	index    int    // Field index in the struct
	column   string // Database column name
	computed bool   // Read-only projection, never written
}

// typeMetadata contains cached reflection metadata for a type.
type typeMetadata struct {
	fields          []fieldInfo
	embeddedIndices []int // Indices of embedded structs for recursive processing
}

// typeCache holds *typeMetadata per reflect.Type.
var typeCache sync.Map

// Columns lists the persisted columns of T in declaration order, recursing
// into embedded structs. Computed and untagged fields are skipped.
//
//	cols := schema.Columns[Post]()
//	// ["id", "title", "discarded_at"]
func Columns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero), false)
}

// ComputedColumns lists the read-only columns of T.
func ComputedColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero), true)
}

func columnsOf(t reflect.Type, computed bool) []string {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	meta := metadataFor(t)
	var cols []string
	for _, fi := range meta.fields {
		if fi.computed == computed {
			cols = append(cols, fi.column)
		}
	}
	for _, idx := range meta.embeddedIndices {
		cols = append(cols, columnsOf(t.Field(idx).Type, computed)...)
	}
	return cols
}

// ToMap converts a struct (or pointer to struct) to column → value for every
// persisted column. Computed fields are left out.
func ToMap(v any) map[string]any {
	rv := indirectValue(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]any)
	collect(rv, res)
	return res
}

// Value returns the value stored under column, computed fields included.
func Value(v any, column string) (any, bool) {
	rv := indirectValue(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}
	return lookup(rv, column)
}

func collect(rv reflect.Value, res map[string]any) {
	meta := metadataFor(rv.Type())

	for _, fi := range meta.fields {
		if fi.computed {
			continue
		}
		res[fi.column] = rv.Field(fi.index).Interface()
	}

	for _, idx := range meta.embeddedIndices {
		embedded := indirectValue(rv.Field(idx))
		if embedded.IsValid() && embedded.Kind() == reflect.Struct {
			collect(embedded, res)
		}
	}
}

func lookup(rv reflect.Value, column string) (any, bool) {
	meta := metadataFor(rv.Type())

	for _, fi := range meta.fields {
		if fi.column == column {
			return rv.Field(fi.index).Interface(), true
		}
	}

	for _, idx := range meta.embeddedIndices {
		embedded := indirectValue(rv.Field(idx))
		if !embedded.IsValid() || embedded.Kind() != reflect.Struct {
			continue
		}
		if val, ok := lookup(embedded, column); ok {
			return val, true
		}
	}
	return nil, false
}

// metadataFor returns cached metadata or computes it once per type.
func metadataFor(t reflect.Type) *typeMetadata {
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			if ft := indirectType(field.Type); ft != nil && ft.Kind() == reflect.Struct {
				meta.embeddedIndices = append(meta.embeddedIndices, i)
			}
			continue
		}

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(dbTag)
		if tag == "" || tag == "-" {
			continue
		}

		meta.fields = append(meta.fields, fieldInfo{
			index:    i,
			column:   tag,
			computed: field.Tag.Get(trashTag) == tagComputed,
		})
	}

	actual, _ := typeCache.LoadOrStore(t, meta)
	return actual.(*typeMetadata)
}

func indirectType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

func indirectValue(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
