// Package main seeds the posts table with sample data and moves a share of
// it to the trash, so every scope of the API has something to show.
// Posts are bulk-loaded with COPY; discards go through the post service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"trash/internal/config"
	"trash/internal/core/id"
	"trash/internal/domain/posts"
	"trash/internal/infrastructure/storage/postgres"
	"trash/internal/infrastructure/storage/postgres/datastore"
	"trash/pkg/logger"
)

func main() {
	count := flag.Int("count", 20, "number of posts to create")
	every := flag.Int("discard-every", 3, "discard every n-th created post (0 disables)")
	flag.Parse()

	if *count < 0 {
		fmt.Printf("invalid -count %d: must not be negative\n", *count)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	if _, err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database.PoolConfig("trash-seed"))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	service, err := posts.NewService(posts.ServiceConfig{
		Store:     datastore.New(txm, posts.TableName, func() *posts.Post { return &posts.Post{} }),
		TxManager: txm,
		Logger:    log,
	})
	if err != nil {
		log.Fatalw("failed to build post service", "error", err)
	}

	samples, err := samplePosts(*count, time.Now())
	if err != nil {
		log.Fatalw("failed to build sample posts", "error", err)
	}

	inserter := postgres.NewBatchInserter(txm)
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := inserter.CopyRows(ctx, posts.TableName, postColumns, postRows(samples))
		return err
	})
	if err != nil {
		log.Fatalw("failed to insert posts", "error", err)
	}

	discarded, err := discardEvery(ctx, service, samples, *every)
	if err != nil {
		log.Fatalw("failed to discard posts", "error", err, "discarded", discarded)
	}

	log.Infow("seeding completed successfully", "created", len(samples), "discarded", discarded)
}

var postColumns = []string{"id", "title", "author", "body", "created_at"}

// samplePosts builds count valid posts, newest last.
func samplePosts(count int, now time.Time) ([]*posts.Post, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}

	authors := []string{"ada", "grace", "edsger", "barbara"}

	out := make([]*posts.Post, 0, count)
	for i := 1; i <= count; i++ {
		title := fmt.Sprintf("Sample post #%d", i)
		author := authors[(i-1)%len(authors)]
		body := fmt.Sprintf("Body of sample post %d.", i)

		post, err := posts.NewPost(
			posts.Params{Title: &title, Author: &author, Body: &body},
			now.Add(time.Duration(i-count)*time.Minute),
		)
		if err != nil {
			return nil, fmt.Errorf("sample post %d: %w", i, err)
		}
		out = append(out, post)
	}
	return out, nil
}

func postRows(items []*posts.Post) [][]any {
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{p.ID, p.Title, p.Author, p.Body, p.CreatedAt})
	}
	return rows
}

// discarder is the part of posts.Service the seed uses.
type discarder interface {
	Discard(ctx context.Context, postID id.ID, params posts.Params) (*posts.Post, error)
}

// discardEvery moves every n-th post to the trash. n <= 0 discards nothing.
func discardEvery(ctx context.Context, s discarder, items []*posts.Post, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	discarded := 0
	for i, p := range items {
		if (i+1)%n != 0 {
			continue
		}
		if _, err := s.Discard(ctx, p.ID, posts.Params{}); err != nil {
			return discarded, fmt.Errorf("discard post %s: %w", p.ID, err)
		}
		discarded++
	}
	return discarded, nil
}
