package trash

import (
	"time"

	"trash/internal/core/apperror"
	"trash/pkg/logger"
	"trash/pkg/trash/store"
)

// Action names a mutation. It is carried by InvalidChangesetError.
type Action string

const (
	ActionDiscard Action = "discard"
	ActionRestore Action = "restore"
)

// Repo binds trash reads and mutations to one DataStore.
// It holds no mutable state and is safe for concurrent use.
type Repo[T any] struct {
	ds  store.DataStore[T]
	now func() time.Time
	log *logger.Logger
}

// Option configures a Repo.
type Option func(*repoConfig)

type repoConfig struct {
	now func() time.Time
	log *logger.Logger
}

// WithClock replaces time.Now as the source of discard timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *repoConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger mutations are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(c *repoConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// New binds ds. A nil DataStore is a CONFIGURATION_ERROR.
func New[T any](ds store.DataStore[T], opts ...Option) (*Repo[T], error) {
	if ds == nil {
		return nil, apperror.NewConfiguration("trash: data store is not configured")
	}

	cfg := repoConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Default()
	}

	return &Repo[T]{
		ds:  ds,
		now: cfg.now,
		log: cfg.log.WithComponent("trash"),
	}, nil
}

// MustNew is New for setup code that cannot continue without a repo.
func MustNew[T any](ds store.DataStore[T], opts ...Option) *Repo[T] {
	r, err := New(ds, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// DataStore returns the bound store.
func (r *Repo[T]) DataStore() store.DataStore[T] {
	return r.ds
}

// discardTime is the current UTC time truncated to whole seconds.
func (r *Repo[T]) discardTime() time.Time {
	return r.now().UTC().Truncate(time.Second)
}
