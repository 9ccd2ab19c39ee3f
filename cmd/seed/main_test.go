package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trash/internal/core/id"
	"trash/internal/domain/posts"
)

type fakeDiscarder struct {
	discarded []id.ID
	err       error
}

func (f *fakeDiscarder) Discard(_ context.Context, postID id.ID, _ posts.Params) (*posts.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.discarded = append(f.discarded, postID)
	return &posts.Post{ID: postID}, nil
}

func TestSamplePosts(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	items, err := samplePosts(5, now)
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "Sample post #1", items[0].Title)
	assert.Equal(t, "ada", *items[0].Author)
	assert.Equal(t, "ada", *items[4].Author)
	assert.Equal(t, now, items[4].CreatedAt)
	assert.True(t, items[0].CreatedAt.Before(items[1].CreatedAt))
	for _, p := range items {
		assert.False(t, p.IsDiscarded())
	}

	rows := postRows(items)
	require.Len(t, rows, 5)
	assert.Len(t, rows[0], len(postColumns))
	assert.Equal(t, items[2].ID, rows[2][0])
}

func TestSamplePosts_Count(t *testing.T) {
	items, err := samplePosts(0, time.Now())
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = samplePosts(-1, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestDiscardEvery(t *testing.T) {
	items, err := samplePosts(7, time.Now())
	require.NoError(t, err)

	s := &fakeDiscarder{}
	n, err := discardEvery(context.Background(), s, items, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []id.ID{items[2].ID, items[5].ID}, s.discarded)

	n, err = discardEvery(context.Background(), s, items, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDiscardEvery_StopsOnError(t *testing.T) {
	items, err := samplePosts(3, time.Now())
	require.NoError(t, err)

	_, err = discardEvery(context.Background(), &fakeDiscarder{err: errors.New("boom")}, items, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), items[0].ID.String())
}
