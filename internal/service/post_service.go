package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/entity"
	"smart-blog-be/internal/metrics"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/cache"
	"smart-blog-be/internal/repository/specification"
	"smart-blog-be/internal/repository/unitofwork"
	"smart-blog-be/pkg/events"
	"smart-blog-be/pkg/lexical"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type IPostService interface {
	Create(ctx context.Context, authorId *uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	List(ctx context.Context, req *dto.ListPostsRequest) (*dto.ListPostsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error)
	Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Publish(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	publishedCache   cache.PublishedPostCache
	logger           logger.ILogger
}

// NewPostService wires the post use cases. publishedCache may be nil, in
// which case published posts are always read from the database.
func NewPostService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	publishedCache cache.PublishedPostCache,
	log logger.ILogger,
) IPostService {
	return &postService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		publishedCache:   publishedCache,
		logger:           log,
	}
}

func (c *postService) Create(ctx context.Context, authorId *uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	post := entity.Post{
		Id:       uuid.New(),
		Title:    entity.DefaultPostTitle,
		Status:   entity.PostStatusDraft,
		AuthorId: authorId,
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		post.Title = *req.Title
	}

	raw := []byte(req.ContentJSON)
	if isAbsent(raw) {
		raw = lexical.EmptyDocument().Bytes()
	}
	if err := c.applyContent(&post, raw); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PostRepository().Create(ctx, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	c.notify(ctx, events.PostCreated, &post)
	return toPostResponse(&post), nil
}

func (c *postService) List(ctx context.Context, req *dto.ListPostsRequest) (*dto.ListPostsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var filters []specification.Specification
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: req.Status})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.PostRepository().Count(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	specs := append(filters,
		specification.RecentlyUpdated{},
		specification.Pagination{Limit: limit, Offset: req.Skip},
	)
	posts, err := uow.PostRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	res := &dto.ListPostsResponse{
		Posts: make([]*dto.PostResponse, 0, len(posts)),
		Total: total,
	}
	for _, p := range posts {
		res.Posts = append(res.Posts, toPostResponse(p))
	}
	return res, nil
}

func (c *postService) Show(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error) {
	if c.publishedCache != nil {
		if cached, ok := c.publishedCache.Get(ctx, id); ok {
			metrics.PublishedCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	res := toPostResponse(post)
	if c.publishedCache != nil && post.IsPublished() {
		metrics.PublishedCacheLookups.WithLabelValues("miss").Inc()
		c.publishedCache.Set(ctx, res)
	}
	return res, nil
}

func (c *postService) Update(ctx context.Context, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if raw := []byte(req.ContentJSON); !isAbsent(raw) {
		if err := c.applyContent(post, raw); err != nil {
			return nil, err
		}
	}
	post.UpdatedAt = time.Now()

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.invalidate(ctx, post.Id)
	c.notify(ctx, events.PostUpdated, post)
	return toPostResponse(post), nil
}

// Publish is one-way. Publishing an already published post returns it
// unchanged.
func (c *postService) Publish(ctx context.Context, id uuid.UUID) (*dto.PostResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.IsPublished() {
		return toPostResponse(post), nil
	}

	post.Status = entity.PostStatusPublished
	post.UpdatedAt = time.Now()
	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, fmt.Errorf("publish post: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.invalidate(ctx, post.Id)
	c.notify(ctx, events.PostPublished, post)
	return toPostResponse(post), nil
}

func (c *postService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	deleted, err := uow.PostRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !deleted {
		return ErrPostNotFound
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.invalidate(ctx, id)
	c.notify(ctx, events.PostDeleted, post)
	return nil
}

// applyContent stores raw as the post content and derives the HTML and
// plain-text columns from it. Input that is not a Lexical editor state is
// rejected. Structurally invalid documents are stored as sent and logged.
func (c *postService) applyContent(post *entity.Post, raw []byte) error {
	doc, err := lexical.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	root, err := lexical.Deserialize(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := lexical.Validate(root); err != nil {
		metrics.MalformedDocuments.Inc()
		c.logger.Warn("POST", "Storing malformed document", map[string]interface{}{
			"post_id": post.Id.String(),
			"error":   err.Error(),
		})
	}

	post.ContentJSON = append([]byte(nil), raw...)
	post.ContentHTML = lexical.Render(root).HTML()
	post.ContentText = lexical.PlainText(root)
	return nil
}

func (c *postService) invalidate(ctx context.Context, id uuid.UUID) {
	if c.publishedCache != nil {
		c.publishedCache.Invalidate(ctx, id)
	}
}

// notify publishes the change on the in-process bus. The mutation is already
// committed, so failures are only logged.
func (c *postService) notify(ctx context.Context, event string, post *entity.Post) {
	metrics.PostMutations.WithLabelValues(event).Inc()
	if c.publisherService == nil {
		return
	}

	msgJson, err := json.Marshal(dto.PostChangedMessage{
		Event:      event,
		PostId:     post.Id,
		Title:      post.Title,
		Status:     string(post.Status),
		AuthorId:   post.AuthorId,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		c.logger.Warn("POST", "Failed to publish post change", map[string]interface{}{
			"event":   event,
			"post_id": post.Id.String(),
			"error":   err.Error(),
		})
	}
}

func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func toPostResponse(p *entity.Post) *dto.PostResponse {
	var content json.RawMessage
	if len(p.ContentJSON) > 0 {
		content = json.RawMessage(p.ContentJSON)
	}
	return &dto.PostResponse{
		Id:          p.Id,
		Title:       p.Title,
		ContentJSON: content,
		ContentHTML: p.ContentHTML,
		ContentText: p.ContentText,
		Status:      string(p.Status),
		AuthorId:    p.AuthorId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
