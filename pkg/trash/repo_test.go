package trash

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"trash/internal/core/apperror"
	"trash/pkg/logger"
	"trash/pkg/trash/changeset"
	"trash/pkg/trash/query"
	"trash/pkg/trash/schema"
	"trash/pkg/trash/store"
	"trash/pkg/trash/store/mocks"
)

type post struct {
	ID     int     `db:"id"`
	Title  string  `db:"title"`
	Author *string `db:"author"`
	schema.Fields
}

// applyChanges is what a DataStore returns after a successful update.
func applyChanges(cs *changeset.Changeset[*post]) *post {
	out := *cs.Data()
	for _, ch := range cs.Changes() {
		switch ch.Field {
		case "title":
			out.Title = ch.Value.(string)
		case schema.ColumnDiscardedAt:
			if ts, ok := ch.Value.(time.Time); ok {
				out.DiscardedAt = &ts
			} else {
				out.DiscardedAt = nil
			}
		}
	}
	return &out
}

// updateLikeStore rejects invalid changesets and applies valid ones.
func updateLikeStore(_ context.Context, cs *changeset.Changeset[*post], _ ...store.Option) (*post, error) {
	if !cs.Valid() {
		return nil, changeset.NewInvalidError(cs)
	}
	return applyChanges(cs), nil
}

type RepoSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	ds    *mocks.MockDataStore[*post]
	logs  *observer.ObservedLogs
	now   time.Time
	repo  *Repo[*post]
	ctx   context.Context
	posts query.Query
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(RepoSuite))
}

func (s *RepoSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ds = mocks.NewMockDataStore[*post](s.ctrl)
	s.now = time.Date(2024, 3, 9, 17, 45, 12, 987654321, time.FixedZone("CET", 3600))
	s.ctx = context.Background()
	s.posts = query.From("posts")

	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs

	repo, err := New[*post](s.ds,
		WithClock(func() time.Time { return s.now }),
		WithLogger(logger.Wrap(zap.New(core))),
	)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepoSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RepoSuite) TestNew() {
	s.Run("nil data store is a configuration error", func() {
		repo, err := New[*post](nil)
		s.Nil(repo)
		s.Error(err)
		s.True(IsConfiguration(err))
	})

	s.Run("MustNew panics without data store", func() {
		s.Panics(func() { MustNew[*post](nil) })
	})

	s.Run("binds the data store", func() {
		repo, err := New[*post](s.ds)
		s.NoError(err)
		s.Same(s.ds, repo.DataStore())
	})
}

func (s *RepoSuite) TestReadsApplyFilter() {
	p := &post{ID: 1, Title: "Hello, World"}
	kept := WithKept(s.posts)
	discarded := WithDiscarded(s.posts)
	clauses := store.Clauses{"title": "Hello, World"}

	tests := []struct {
		name   string
		expect func()
		call   func() (any, error)
		want   any
	}{
		{
			name:   "AllDiscarded",
			expect: func() { s.ds.EXPECT().All(s.ctx, discarded).Return([]*post{p}, nil) },
			call:   func() (any, error) { return s.repo.AllDiscarded(s.ctx, s.posts) },
			want:   []*post{p},
		},
		{
			name:   "AllKept",
			expect: func() { s.ds.EXPECT().All(s.ctx, kept).Return([]*post{p}, nil) },
			call:   func() (any, error) { return s.repo.AllKept(s.ctx, s.posts) },
			want:   []*post{p},
		},
		{
			name:   "ExistsDiscarded",
			expect: func() { s.ds.EXPECT().Exists(s.ctx, discarded).Return(true, nil) },
			call:   func() (any, error) { return s.repo.ExistsDiscarded(s.ctx, s.posts) },
			want:   true,
		},
		{
			name:   "ExistsKept",
			expect: func() { s.ds.EXPECT().Exists(s.ctx, kept).Return(false, nil) },
			call:   func() (any, error) { return s.repo.ExistsKept(s.ctx, s.posts) },
			want:   false,
		},
		{
			name:   "GetDiscarded",
			expect: func() { s.ds.EXPECT().Get(s.ctx, discarded, 1).Return(p, true, nil) },
			call: func() (any, error) {
				got, _, err := s.repo.GetDiscarded(s.ctx, s.posts, 1)
				return got, err
			},
			want: p,
		},
		{
			name:   "GetKept",
			expect: func() { s.ds.EXPECT().Get(s.ctx, kept, 1).Return(p, true, nil) },
			call: func() (any, error) {
				got, _, err := s.repo.GetKept(s.ctx, s.posts, 1)
				return got, err
			},
			want: p,
		},
		{
			name:   "GetDiscardedRequired",
			expect: func() { s.ds.EXPECT().GetRequired(s.ctx, discarded, 1).Return(p, nil) },
			call:   func() (any, error) { return s.repo.GetDiscardedRequired(s.ctx, s.posts, 1) },
			want:   p,
		},
		{
			name:   "GetKeptRequired",
			expect: func() { s.ds.EXPECT().GetRequired(s.ctx, kept, 1).Return(p, nil) },
			call:   func() (any, error) { return s.repo.GetKeptRequired(s.ctx, s.posts, 1) },
			want:   p,
		},
		{
			name:   "GetByDiscarded",
			expect: func() { s.ds.EXPECT().GetBy(s.ctx, discarded, clauses).Return(p, true, nil) },
			call: func() (any, error) {
				got, _, err := s.repo.GetByDiscarded(s.ctx, s.posts, clauses)
				return got, err
			},
			want: p,
		},
		{
			name:   "GetByKept",
			expect: func() { s.ds.EXPECT().GetBy(s.ctx, kept, clauses).Return(p, true, nil) },
			call: func() (any, error) {
				got, _, err := s.repo.GetByKept(s.ctx, s.posts, clauses)
				return got, err
			},
			want: p,
		},
		{
			name:   "GetByDiscardedRequired",
			expect: func() { s.ds.EXPECT().GetByRequired(s.ctx, discarded, clauses).Return(p, nil) },
			call:   func() (any, error) { return s.repo.GetByDiscardedRequired(s.ctx, s.posts, clauses) },
			want:   p,
		},
		{
			name:   "GetByKeptRequired",
			expect: func() { s.ds.EXPECT().GetByRequired(s.ctx, kept, clauses).Return(p, nil) },
			call:   func() (any, error) { return s.repo.GetByKeptRequired(s.ctx, s.posts, clauses) },
			want:   p,
		},
		{
			name:   "OneDiscarded",
			expect: func() { s.ds.EXPECT().One(s.ctx, discarded).Return(p, true, nil) },
			call: func() (any, error) {
				got, _, err := s.repo.OneDiscarded(s.ctx, s.posts)
				return got, err
			},
			want: p,
		},
		{
			name:   "OneKept",
			expect: func() { s.ds.EXPECT().One(s.ctx, kept).Return(p, true, nil) },
			call: func() (any, error) {
				got, _, err := s.repo.OneKept(s.ctx, s.posts)
				return got, err
			},
			want: p,
		},
		{
			name:   "OneDiscardedRequired",
			expect: func() { s.ds.EXPECT().OneRequired(s.ctx, discarded).Return(p, nil) },
			call:   func() (any, error) { return s.repo.OneDiscardedRequired(s.ctx, s.posts) },
			want:   p,
		},
		{
			name:   "OneKeptRequired",
			expect: func() { s.ds.EXPECT().OneRequired(s.ctx, kept).Return(p, nil) },
			call:   func() (any, error) { return s.repo.OneKeptRequired(s.ctx, s.posts) },
			want:   p,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.expect()
			got, err := tt.call()
			s.NoError(err)
			s.Equal(tt.want, got)
		})
	}
}

func (s *RepoSuite) TestReadsPropagateErrors() {
	s.Run("kept-only required read of a discarded id is not found", func() {
		notFound := apperror.NewNotFound("posts", 7)
		s.ds.EXPECT().GetRequired(s.ctx, WithKept(s.posts), 7).Return(nil, notFound)

		got, err := s.repo.GetKeptRequired(s.ctx, s.posts, 7)
		s.Nil(got)
		s.Same(notFound, err)
		s.True(IsNotFound(err))
	})

	s.Run("multiple results are surfaced", func() {
		s.ds.EXPECT().One(s.ctx, WithDiscarded(s.posts)).Return(nil, false, apperror.NewMultipleResults("posts", 2))

		_, found, err := s.repo.OneDiscarded(s.ctx, s.posts)
		s.False(found)
		s.True(IsMultipleResults(err))
	})

	s.Run("absence is not an error", func() {
		s.ds.EXPECT().GetBy(s.ctx, WithKept(s.posts), store.Clauses{"title": "x"}).Return(nil, false, nil)

		got, found, err := s.repo.GetByKept(s.ctx, s.posts, store.Clauses{"title": "x"})
		s.NoError(err)
		s.False(found)
		s.Nil(got)
	})
}

func (s *RepoSuite) TestOptionsPassThrough() {
	s.ds.EXPECT().
		All(s.ctx, WithKept(s.posts), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ query.Query, opts ...store.Option) ([]*post, error) {
			o := store.Apply(opts...)
			s.Equal("archive", o.Prefix)
			s.True(o.ForUpdate)
			return nil, nil
		})

	_, err := s.repo.AllKept(s.ctx, s.posts, store.WithPrefix("archive"), store.ForUpdate())
	s.NoError(err)
}

func (s *RepoSuite) TestDiscard() {
	s.Run("entity gets a truncated UTC timestamp", func() {
		entity := &post{ID: 1, Title: "Hello, World"}
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		updated, err := s.repo.DiscardEntity(s.ctx, entity)
		s.Require().NoError(err)
		s.Require().NotNil(updated.DiscardedAt)
		s.Equal(time.Date(2024, 3, 9, 16, 45, 12, 0, time.UTC), *updated.DiscardedAt)
		s.Equal(time.UTC, updated.DiscardedAt.Location())
		s.Nil(entity.DiscardedAt, "input entity is not modified")
	})

	s.Run("entity becomes an empty changeset plus the stamp", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, cs *changeset.Changeset[*post], opts ...store.Option) (*post, error) {
				s.Equal([]string{schema.ColumnDiscardedAt}, cs.Fields())
				s.True(cs.Valid())
				return updateLikeStore(ctx, cs, opts...)
			})

		_, err := s.repo.DiscardEntity(s.ctx, &post{ID: 1})
		s.NoError(err)
	})

	s.Run("changeset keeps other changes", func() {
		cs := changeset.New(&post{ID: 1, Title: "old"}).Put("title", "new")
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		updated, err := s.repo.DiscardChangeset(s.ctx, cs)
		s.Require().NoError(err)
		s.Equal("new", updated.Title)
		s.NotNil(updated.DiscardedAt)
		s.Equal([]string{"title"}, cs.Fields(), "caller's changeset is not modified")
	})

	s.Run("discarding a discarded entity stamps it again", func() {
		earlier := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		entity := &post{ID: 1, Fields: schema.Fields{DiscardedAt: &earlier}}
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		updated, err := s.repo.DiscardEntity(s.ctx, entity)
		s.Require().NoError(err)
		s.True(updated.DiscardedAt.After(earlier))
	})
}

func (s *RepoSuite) TestRestore() {
	s.Run("discarded entity is kept again", func() {
		now := time.Now()
		entity := &post{ID: 1, Title: "Hello, World", Fields: schema.Fields{DiscardedAt: &now}}
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		updated, err := s.repo.RestoreEntity(s.ctx, entity)
		s.Require().NoError(err)
		s.Nil(updated.DiscardedAt)
	})

	s.Run("restoring a kept entity writes null and succeeds", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, cs *changeset.Changeset[*post], opts ...store.Option) (*post, error) {
				v, ok := cs.Change(schema.ColumnDiscardedAt)
				s.True(ok)
				s.Nil(v)
				return updateLikeStore(ctx, cs, opts...)
			})

		updated, err := s.repo.RestoreEntity(s.ctx, &post{ID: 1})
		s.Require().NoError(err)
		s.Nil(updated.DiscardedAt)
	})

	s.Run("changeset variant", func() {
		now := time.Now()
		cs := changeset.New(&post{ID: 1, Fields: schema.Fields{DiscardedAt: &now}})
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		updated, err := s.repo.RestoreChangeset(s.ctx, cs)
		s.Require().NoError(err)
		s.Nil(updated.DiscardedAt)
	})
}

func (s *RepoSuite) TestRoundTrip() {
	s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore).Times(8)

	for _, start := range []*post{{ID: 1}, {ID: 2, Fields: schema.Fields{DiscardedAt: &s.now}}} {
		restored := s.repo.MustRestore(s.ctx, changeset.FromEntity(s.repo.MustDiscard(s.ctx, changeset.FromEntity(start))))
		s.Nil(restored.DiscardedAt)

		discarded := s.repo.MustDiscard(s.ctx, changeset.FromEntity(s.repo.MustRestore(s.ctx, changeset.FromEntity(start))))
		s.NotNil(discarded.DiscardedAt)
	}
}

func (s *RepoSuite) TestInvalidChangeset() {
	newInvalid := func() *changeset.Changeset[*post] {
		return changeset.New(&post{ID: 1, Title: "Hello, World"}).ValidateRequired("title", "author")
	}

	s.Run("Discard returns the changeset with original errors and the stamp", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		_, err := s.repo.DiscardChangeset(s.ctx, newInvalid())
		s.Require().Error(err)
		s.True(IsInvalid(err))

		invalid, ok := changeset.AsInvalid[*post](err)
		s.Require().True(ok)
		s.Equal([]changeset.FieldError{{Field: "author", Message: changeset.MsgBlank}}, invalid.Changeset.Errors())

		stamp, ok := invalid.Changeset.Change(schema.ColumnDiscardedAt)
		s.True(ok)
		s.Equal(time.Date(2024, 3, 9, 16, 45, 12, 0, time.UTC), stamp)

		s.Equal(1, s.logs.FilterMessage("changeset rejected").Len())
	})

	s.Run("MustDiscard panics with the action and changeset", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		defer func() {
			rec := recover()
			s.Require().NotNil(rec)

			invalid, ok := rec.(*InvalidChangesetError[*post])
			s.Require().True(ok, "panic value %T", rec)
			s.Equal(ActionDiscard, invalid.Action)
			s.False(invalid.Changeset.Valid())
			s.Contains(invalid.Error(), "could not perform discard")
			s.True(IsInvalid(invalid))
			s.True(apperror.HasCode(invalid, apperror.CodeInvalidChangeset))
		}()

		s.repo.MustDiscard(s.ctx, changeset.FromChangeset(newInvalid()))
	})

	s.Run("MustRestore names the restore action", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		defer func() {
			invalid, ok := recover().(*InvalidChangesetError[*post])
			s.Require().True(ok)
			s.Equal(ActionRestore, invalid.Action)
		}()

		s.repo.MustRestore(s.ctx, changeset.FromChangeset(newInvalid()))
	})

	s.Run("MustDiscard of a bare entity succeeds", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(updateLikeStore)

		s.NotPanics(func() {
			got := s.repo.MustDiscard(s.ctx, changeset.FromEntity(&post{ID: 1}))
			s.NotNil(got.DiscardedAt)
		})
	})
}

func (s *RepoSuite) TestStoreErrorsPropagate() {
	boom := errors.New("connection reset")

	s.Run("Discard", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).Return(nil, boom)

		got, err := s.repo.DiscardEntity(s.ctx, &post{ID: 1})
		s.Nil(got)
		s.ErrorIs(err, boom)
	})

	s.Run("MustRestore panics with the store error", func() {
		s.ds.EXPECT().Update(s.ctx, gomock.Any()).Return(nil, boom)

		s.PanicsWithError(boom.Error(), func() {
			s.repo.MustRestore(s.ctx, changeset.FromEntity(&post{ID: 1}))
		})
	})
}
