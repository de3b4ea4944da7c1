package postapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart-blog-be/pkg/lexical"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// AI actions accepted by the text-generation endpoint.
const (
	ActionSummarize  = "summarize"
	ActionFixGrammar = "fix_grammar"
	ActionExpand     = "expand"
	ActionTitle      = "title"
)

var ErrNotFound = errors.New("post not found")

// Post is the client-side copy of a stored post. The server owns UpdatedAt.
type Post struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Content     *lexical.Document `json:"content_json"`
	ContentHTML string            `json:"content_html,omitempty"`
	ContentText string            `json:"content_text,omitempty"`
	Status      Status            `json:"status"`
	AuthorID    *string           `json:"author_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreatePostRequest struct {
	Title   string            `json:"title,omitempty"`
	Content *lexical.Document `json:"content_json,omitempty"`
}

// UpdatePostRequest is a partial update; nil fields are left unchanged.
type UpdatePostRequest struct {
	Title   *string           `json:"title,omitempty"`
	Content *lexical.Document `json:"content_json,omitempty"`
}

type ListOptions struct {
	Status Status
	Skip   int
	Limit  int
}

type PostList struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
}

type GenerateRequest struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

type GenerateResponse struct {
	Result string `json:"result"`
	Action string `json:"action"`
}

// API is the post persistence surface the editor depends on.
type API interface {
	ListPosts(ctx context.Context, opts ListOptions) (*PostList, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)
	PublishPost(ctx context.Context, id string) (*Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Generator is the text-generation call of the AI assist feature.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// envelope mirrors the server's response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
