// Package datastore implements store.DataStore on PostgreSQL with squirrel
// for SQL and scany for scanning.
//
// T must be a pointer to a struct mapped with "db" tags, and newFn must
// return a fresh, non-nil value of it:
//
//	posts := datastore.New(txm, "posts", func() *Post { return &Post{} })
package datastore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trash/internal/core/apperror"
	"trash/internal/infrastructure/storage/postgres"
	"trash/pkg/trash/changeset"
	"trash/pkg/trash/query"
	"trash/pkg/trash/schema"
	"trash/pkg/trash/store"
)

var tracer = otel.Tracer("trash/datastore")

// Conn is what Store needs from the transaction manager.
// *postgres.TxManager implements it.
type Conn interface {
	GetQuerier(ctx context.Context) postgres.Querier
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is a DataStore over one table.
type Store[T any] struct {
	conn     Conn
	table    string
	pk       string
	newFn    func() T
	columns  []string
	writable map[string]bool
	computed map[string]bool
}

// Option configures a Store.
type Option func(*config)

type config struct {
	pk string
}

// WithPrimaryKey sets the column Get and Update match on. Default "id".
func WithPrimaryKey(column string) Option {
	return func(c *config) {
		c.pk = column
	}
}

// New creates a Store for table. Columns are read from T's db tags once.
func New[T any](conn Conn, table string, newFn func() T, opts ...Option) *Store[T] {
	cfg := config{pk: "id"}
	for _, opt := range opts {
		opt(&cfg)
	}

	columns := schema.Columns[T]()
	writable := make(map[string]bool, len(columns))
	for _, col := range columns {
		writable[col] = true
	}
	computed := make(map[string]bool)
	for _, col := range schema.ComputedColumns[T]() {
		computed[col] = true
	}

	return &Store[T]{
		conn:     conn,
		table:    table,
		pk:       cfg.pk,
		newFn:    newFn,
		columns:  columns,
		writable: writable,
		computed: computed,
	}
}

// Table returns the table name.
func (s *Store[T]) Table() string {
	return s.table
}

// Query starts a query over the store's table.
func (s *Store[T]) Query() query.Query {
	return query.From(s.table)
}

// All returns every row matching q.
func (s *Store[T]) All(ctx context.Context, q query.Query, opts ...store.Option) (items []T, err error) {
	ctx, span := s.startSpan(ctx, "all")
	defer func() { finishSpan(span, err) }()

	sql, args, err := s.buildSelect(q, store.Apply(opts...))
	if err != nil {
		return nil, err
	}

	items = make([]T, 0)
	if err := pgxscan.Select(ctx, s.conn.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, s.wrap("select", err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(items)))
	return items, nil
}

// Exists reports whether any row matches q.
func (s *Store[T]) Exists(ctx context.Context, q query.Query, opts ...store.Option) (exists bool, err error) {
	ctx, span := s.startSpan(ctx, "exists")
	defer func() { finishSpan(span, err) }()

	sql, args, err := s.buildExists(q, store.Apply(opts...))
	if err != nil {
		return false, err
	}

	if err := s.conn.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, s.wrap("exists", err)
	}
	return exists, nil
}

// Get fetches the row whose primary key is id.
func (s *Store[T]) Get(ctx context.Context, q query.Query, id any, opts ...store.Option) (T, bool, error) {
	return s.one(ctx, "get", q.Where(squirrel.Eq{s.pk: id}), store.Apply(opts...))
}

// GetRequired is Get that fails with NOT_FOUND.
func (s *Store[T]) GetRequired(ctx context.Context, q query.Query, id any, opts ...store.Option) (T, error) {
	item, found, err := s.Get(ctx, q, id, opts...)
	if err != nil {
		return item, err
	}
	if !found {
		return item, apperror.NewNotFound(s.table, id)
	}
	return item, nil
}

// GetBy fetches the single row matching clauses.
func (s *Store[T]) GetBy(ctx context.Context, q query.Query, clauses store.Clauses, opts ...store.Option) (T, bool, error) {
	if err := s.checkClauses(clauses); err != nil {
		var zero T
		return zero, false, err
	}
	return s.one(ctx, "get_by", q.WhereEq(clauses), store.Apply(opts...))
}

// GetByRequired is GetBy that fails with NOT_FOUND.
func (s *Store[T]) GetByRequired(ctx context.Context, q query.Query, clauses store.Clauses, opts ...store.Option) (T, error) {
	item, found, err := s.GetBy(ctx, q, clauses, opts...)
	if err != nil {
		return item, err
	}
	if !found {
		return item, apperror.NewNotFound(s.table, map[string]any(clauses))
	}
	return item, nil
}

// One fetches the single row matching q.
func (s *Store[T]) One(ctx context.Context, q query.Query, opts ...store.Option) (T, bool, error) {
	return s.one(ctx, "one", q, store.Apply(opts...))
}

// OneRequired is One that fails with NOT_FOUND.
func (s *Store[T]) OneRequired(ctx context.Context, q query.Query, opts ...store.Option) (T, error) {
	item, found, err := s.One(ctx, q, opts...)
	if err != nil {
		return item, err
	}
	if !found {
		return item, apperror.NewNotFound(s.table, nil)
	}
	return item, nil
}

// one fetches at most two rows so a second match can be reported.
func (s *Store[T]) one(ctx context.Context, op string, q query.Query, o store.Options) (item T, found bool, err error) {
	ctx, span := s.startSpan(ctx, op)
	defer func() { finishSpan(span, err) }()

	if q.LimitValue() == 0 {
		q = q.Limit(2)
	}

	sql, args, err := s.buildSelect(q, o)
	if err != nil {
		return item, false, err
	}

	var items []T
	if err := pgxscan.Select(ctx, s.conn.GetQuerier(ctx), &items, sql, args...); err != nil {
		return item, false, s.wrap("select", err)
	}

	switch len(items) {
	case 0:
		return item, false, nil
	case 1:
		return items[0], true, nil
	default:
		return item, false, apperror.NewMultipleResults(s.table, len(items))
	}
}

// Update writes the changes of cs to the row identified by its data's
// primary key and returns the stored row. An invalid changeset is rejected
// before any I/O, and a changeset without changes returns its data as is.
func (s *Store[T]) Update(ctx context.Context, cs *changeset.Changeset[T], opts ...store.Option) (out T, err error) {
	if !cs.Valid() {
		return out, changeset.NewInvalidError(cs)
	}
	if !cs.HasChanges() {
		return cs.Data(), nil
	}

	ctx, span := s.startSpan(ctx, "update")
	defer func() { finishSpan(span, err) }()

	id, ok := schema.Value(cs.Data(), s.pk)
	if !ok {
		return out, apperror.NewValidation("record has no primary key").WithDetail("column", s.pk)
	}

	sql, args, err := s.buildUpdate(id, cs.Changes(), store.Apply(opts...))
	if err != nil {
		return out, err
	}

	err = s.conn.RunInTransaction(ctx, func(ctx context.Context) error {
		row := s.newFn()
		if err := pgxscan.Get(ctx, s.conn.GetQuerier(ctx), row, sql, args...); err != nil {
			if pgxscan.NotFound(err) {
				return apperror.NewNotFound(s.table, id)
			}
			return s.wrap("update", err)
		}
		out = row
		return nil
	})
	return out, err
}

// Insert writes entity as a new row and returns it as stored.
func (s *Store[T]) Insert(ctx context.Context, entity T, opts ...store.Option) (out T, err error) {
	ctx, span := s.startSpan(ctx, "insert")
	defer func() { finishSpan(span, err) }()

	sql, args, err := s.buildInsert(entity, store.Apply(opts...))
	if err != nil {
		return out, err
	}

	row := s.newFn()
	if err := pgxscan.Get(ctx, s.conn.GetQuerier(ctx), row, sql, args...); err != nil {
		return out, s.wrap("insert", err)
	}
	return row, nil
}

func (s *Store[T]) buildSelect(q query.Query, o store.Options) (string, []any, error) {
	q, err := s.prepare(q, o)
	if err != nil {
		return "", nil, err
	}

	b := q.Expand(s.columns...).Builder()
	if o.ForUpdate {
		b = b.Suffix("FOR UPDATE")
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build query: %w", err)
	}
	return sql, args, nil
}

func (s *Store[T]) buildExists(q query.Query, o store.Options) (string, []any, error) {
	q, err := s.prepare(q, o)
	if err != nil {
		return "", nil, err
	}

	b := q.Select("1").Limit(1).Builder()
	if o.ForUpdate {
		b = b.Suffix("FOR UPDATE")
	}

	sub, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build query: %w", err)
	}
	return "SELECT EXISTS (" + sub + ")", args, nil
}

func (s *Store[T]) buildUpdate(id any, changes []changeset.Change, o store.Options) (string, []any, error) {
	set := make(map[string]any, len(changes))
	for _, ch := range changes {
		if err := s.checkWritable(ch.Field); err != nil {
			return "", nil, err
		}
		set[ch.Field] = ch.Value
	}

	sql, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Update(s.source(o)).
		SetMap(set).
		Where(squirrel.Eq{s.pk: id}).
		Suffix("RETURNING " + strings.Join(s.columns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build update: %w", err)
	}
	return sql, args, nil
}

func (s *Store[T]) buildInsert(entity T, o store.Options) (string, []any, error) {
	data := schema.ToMap(entity)
	if len(data) == 0 {
		return "", nil, apperror.NewValidation("record has no db columns").WithDetail("table", s.table)
	}

	sql, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Insert(s.source(o)).
		SetMap(data).
		Suffix("RETURNING " + strings.Join(s.columns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build insert: %w", err)
	}
	return sql, args, nil
}

func (s *Store[T]) prepare(q query.Query, o store.Options) (query.Query, error) {
	if q.Table() == "" {
		return q, apperror.NewValidation("query has no table")
	}
	if o.Prefix != "" {
		q = q.Prefix(o.Prefix)
	}
	return q, nil
}

func (s *Store[T]) source(o store.Options) string {
	if o.Prefix == "" {
		return s.table
	}
	return o.Prefix + "." + s.table
}

// checkWritable guards column names, which squirrel writes into SQL verbatim.
func (s *Store[T]) checkWritable(column string) error {
	switch {
	case s.computed[column]:
		return apperror.NewValidation("column is read-only").WithDetail("column", column)
	case column == s.pk, !s.writable[column]:
		return apperror.NewValidation("column cannot be written").WithDetail("column", column)
	}
	return nil
}

func (s *Store[T]) checkClauses(clauses store.Clauses) error {
	for column := range clauses {
		if column != s.pk && !s.writable[column] {
			return apperror.NewValidation("invalid filter column").WithDetail("column", column)
		}
	}
	return nil
}

func (s *Store[T]) wrap(op string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.NewDatabase(fmt.Errorf("%s %s: %w", op, s.table, err)).
			WithDetail("pgCode", pgErr.Code)
	}
	return fmt.Errorf("%s %s: %w", op, s.table, err)
}

func (s *Store[T]) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "datastore."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.table", s.table),
		))
}

func finishSpan(span trace.Span, err error) {
	if err != nil && !apperror.IsNotFound(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
