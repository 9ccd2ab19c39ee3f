package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"trash/internal/core/id"
	"trash/internal/domain/posts"
	"trash/internal/infrastructure/http/v1/dto"
)

// PostService is the part of posts.Service the handlers call.
type PostService interface {
	Create(ctx context.Context, params posts.Params) (*posts.Post, error)
	List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error)
	Get(ctx context.Context, postID id.ID, scope posts.Scope) (*posts.Post, error)
	Update(ctx context.Context, postID id.ID, params posts.Params) (*posts.Post, error)
	Discard(ctx context.Context, postID id.ID, params posts.Params) (*posts.Post, error)
	Restore(ctx context.Context, postID id.ID, params posts.Params) (*posts.Post, error)
}

// PostHandler serves /posts.
type PostHandler struct {
	*BaseHandler
	service PostService
}

// NewPostHandler creates a post handler.
func NewPostHandler(base *BaseHandler, service PostService) *PostHandler {
	return &PostHandler{BaseHandler: base, service: service}
}

// List handles GET /posts?scope=&computed=&author=&limit=&offset=
func (h *PostHandler) List(c *gin.Context) {
	var q dto.ListPostsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	scope, err := posts.ParseScope(q.Scope)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := posts.DefaultListFilter()
	filter.Scope = scope
	filter.Computed = q.Computed
	filter.Author = q.Author
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	filter.Offset = q.Offset

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[dto.PostResponse]{
		Items:  dto.FromPosts(items),
		Scope:  string(scope),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Get handles GET /posts/:id?scope=
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := h.ParseID(c)
	if !ok {
		return
	}
	scope, err := posts.ParseScope(c.Query("scope"))
	if err != nil {
		h.Error(c, err)
		return
	}

	post, err := h.service.Get(c.Request.Context(), postID, scope)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPost(post))
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	post, err := h.service.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromPost(post))
}

// Update handles PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	post, err := h.service.Update(c.Request.Context(), postID, req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPost(post))
}

// Discard handles POST /posts/:id/discard with an optional body of edits.
func (h *PostHandler) Discard(c *gin.Context) {
	h.transition(c, h.service.Discard)
}

// Restore handles POST /posts/:id/restore with an optional body of edits.
func (h *PostHandler) Restore(c *gin.Context) {
	h.transition(c, h.service.Restore)
}

func (h *PostHandler) transition(c *gin.Context, action func(context.Context, id.ID, posts.Params) (*posts.Post, error)) {
	postID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	post, err := action(c.Request.Context(), postID, req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPost(post))
}
