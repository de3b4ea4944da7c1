package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title       *string         `json:"title" validate:"omitempty,max=500"`
	ContentJSON json.RawMessage `json:"content_json"`
}

// UpdatePostRequest is a partial update: absent fields are left unchanged.
type UpdatePostRequest struct {
	Id          uuid.UUID       `json:"-"`
	Title       *string         `json:"title" validate:"omitempty,max=500"`
	ContentJSON json.RawMessage `json:"content_json"`
}

type ListPostsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=draft published"`
	Skip   int    `query:"skip" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
}

type PostResponse struct {
	Id          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	ContentJSON json.RawMessage `json:"content_json"`
	ContentHTML string          `json:"content_html"`
	ContentText string          `json:"content_text"`
	Status      string          `json:"status"`
	AuthorId    *uuid.UUID      `json:"author_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ListPostsResponse struct {
	Posts []*PostResponse `json:"posts"`
	Total int64           `json:"total"`
}

// PostChangedMessage is published on the in-process bus after every post
// mutation.
type PostChangedMessage struct {
	Event      string     `json:"event"`
	PostId     uuid.UUID  `json:"post_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	AuthorId   *uuid.UUID `json:"author_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
