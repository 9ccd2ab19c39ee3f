package dto

import (
	"time"

	"trash/internal/domain/posts"
)

// --- Request DTOs ---

// CreatePostRequest is the request body for creating a post.
// Required fields are checked by the post changeset, not by binding.
type CreatePostRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Body   *string `json:"body"`
}

// ToParams converts the request to domain params.
func (r *CreatePostRequest) ToParams() posts.Params {
	return posts.Params{Title: r.Title, Author: r.Author, Body: r.Body}
}

// UpdatePostRequest is the body of PATCH and of the optional discard/restore
// edits. Omitted fields stay unchanged.
type UpdatePostRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Body   *string `json:"body"`
}

// ToParams converts the request to domain params.
func (r *UpdatePostRequest) ToParams() posts.Params {
	return posts.Params{Title: r.Title, Author: r.Author, Body: r.Body}
}

// ListPostsQuery holds the query string of GET /posts.
type ListPostsQuery struct {
	Scope    string `form:"scope"`
	Computed bool   `form:"computed"`
	Author   string `form:"author"`
	Limit    int    `form:"limit" binding:"min=0,max=500"`
	Offset   int    `form:"offset" binding:"min=0"`
}

// --- Response DTOs ---

// PostResponse is the API view of a post.
type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      *string    `json:"author"`
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"createdAt"`
	DiscardedAt *time.Time `json:"discardedAt"`
	Discarded   *bool      `json:"discarded,omitempty"`
}

// FromPost converts a domain post to its response.
func FromPost(p *posts.Post) PostResponse {
	return PostResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Author:      p.Author,
		Body:        p.Body,
		CreatedAt:   p.CreatedAt,
		DiscardedAt: p.DiscardedAt,
		Discarded:   p.Discarded,
	}
}

// FromPosts converts a page of posts.
func FromPosts(items []*posts.Post) []PostResponse {
	out := make([]PostResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPost(p))
	}
	return out
}
