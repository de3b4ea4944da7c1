package entity

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

const DefaultPostTitle = "Untitled"

type Post struct {
	Id          uuid.UUID
	Title       string
	ContentJSON []byte // nil when the post has no content
	ContentHTML string
	ContentText string
	Status      PostStatus
	AuthorId    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
