package posts

import (
	"context"
	"time"

	"trash/internal/core/apperror"
	"trash/internal/core/id"
	"trash/internal/core/tx"
	"trash/pkg/logger"
	"trash/pkg/trash"
	"trash/pkg/trash/changeset"
	"trash/pkg/trash/query"
	"trash/pkg/trash/store"
)

// Store persists posts. The Postgres datastore implements it.
type Store interface {
	store.DataStore[*Post]
	Insert(ctx context.Context, post *Post, opts ...store.Option) (*Post, error)
	Query() query.Query
}

// Observer is told the outcome of every discard and restore.
type Observer interface {
	ObserveTrashAction(entity, action, outcome string)
}

// Outcomes reported to Observer.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Store     Store
	TxManager tx.Manager
	Observer  Observer
	Logger    *logger.Logger
	Clock     func() time.Time
}

// Service implements post use cases.
type Service struct {
	store    Store
	repo     *trash.Repo[*Post]
	txm      tx.Manager
	observer Observer
	now      func() time.Time
}

// NewService creates a post service. Store and TxManager are required.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.TxManager == nil {
		return nil, apperror.NewConfiguration("posts: transaction manager is not configured")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	var ds store.DataStore[*Post]
	if cfg.Store != nil {
		ds = cfg.Store
	}
	repo, err := trash.New(ds, trash.WithClock(cfg.Clock), trash.WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}

	return &Service{
		store:    cfg.Store,
		repo:     repo,
		txm:      cfg.TxManager,
		observer: cfg.Observer,
		now:      cfg.Clock,
	}, nil
}

// Create validates params and inserts a new kept post.
func (s *Service) Create(ctx context.Context, params Params) (*Post, error) {
	post, err := NewPost(params, s.now())
	if err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, post)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "post created", "post_id", created.ID)
	return created, nil
}

// List returns one page of posts in the requested scope, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Post, error) {
	q := s.store.Query().OrderBy("created_at DESC", "id DESC")
	if filter.Author != "" {
		q = q.WhereEq(map[string]any{"author": filter.Author})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	if filter.Computed {
		q = trash.WithComputedProjection(q)
	}

	switch filter.Scope {
	case ScopeDiscarded:
		return s.repo.AllDiscarded(ctx, q)
	case ScopeAll:
		return s.store.All(ctx, q)
	default:
		return s.repo.AllKept(ctx, q)
	}
}

// Get returns a post in the requested scope. The computed discarded flag is
// always populated.
func (s *Service) Get(ctx context.Context, postID id.ID, scope Scope) (*Post, error) {
	q := trash.WithComputedProjection(s.store.Query())

	switch scope {
	case ScopeDiscarded:
		return s.repo.GetDiscardedRequired(ctx, q, postID)
	case ScopeAll:
		return s.store.GetRequired(ctx, q, postID)
	default:
		return s.repo.GetKeptRequired(ctx, q, postID)
	}
}

// Update edits a kept post. Discarded posts must be restored first.
func (s *Service) Update(ctx context.Context, postID id.ID, params Params) (*Post, error) {
	var updated *Post
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		post, err := s.repo.GetKeptRequired(ctx, s.store.Query(), postID, store.ForUpdate())
		if err != nil {
			return err
		}

		updated, err = s.store.Update(ctx, post.Changeset(params))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Discard moves a post to the trash. When params carry edits they are
// validated and written together with the discard.
func (s *Service) Discard(ctx context.Context, postID id.ID, params Params) (*Post, error) {
	return s.transition(ctx, trash.ActionDiscard, postID, params)
}

// Restore takes a post out of the trash, applying params like Discard.
func (s *Service) Restore(ctx context.Context, postID id.ID, params Params) (*Post, error) {
	return s.transition(ctx, trash.ActionRestore, postID, params)
}

func (s *Service) transition(ctx context.Context, action trash.Action, postID id.ID, params Params) (*Post, error) {
	var out *Post
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		post, err := s.store.GetRequired(ctx, s.store.Query(), postID, store.ForUpdate())
		if err != nil {
			return err
		}

		intent := changeset.FromEntity(post)
		if !params.IsEmpty() {
			intent = changeset.FromChangeset(post.Changeset(params))
		}

		if action == trash.ActionDiscard {
			out, err = s.repo.Discard(ctx, intent)
		} else {
			out, err = s.repo.Restore(ctx, intent)
		}
		return err
	})

	s.observe(action, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) observe(action trash.Action, err error) {
	if s.observer == nil {
		return
	}

	outcome := OutcomeOK
	switch {
	case err == nil:
	case trash.IsInvalid(err):
		outcome = OutcomeInvalid
	default:
		outcome = OutcomeError
	}
	s.observer.ObserveTrashAction(TableName, string(action), outcome)
}

// NewPost validates params and builds a kept post that is not stored yet.
func NewPost(params Params, now time.Time) (*Post, error) {
	post := &Post{
		ID:        id.New(),
		CreatedAt: now.UTC().Truncate(time.Microsecond),
	}

	cs := post.Changeset(params)
	if !cs.Valid() {
		return nil, changeset.NewInvalidError(cs)
	}
	applyChanges(post, cs)
	return post, nil
}

// applyChanges copies validated changes onto a post that is not stored yet.
func applyChanges(post *Post, cs *changeset.Changeset[*Post]) {
	for _, ch := range cs.Changes() {
		switch ch.Field {
		case "title":
			post.Title, _ = ch.Value.(string)
		case "author":
			if author, ok := ch.Value.(string); ok {
				post.Author = &author
			} else {
				post.Author = nil
			}
		case "body":
			post.Body, _ = ch.Value.(string)
		}
	}
}
