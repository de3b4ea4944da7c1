package events

import "time"

const (
	PostCreated   = "POST_CREATED"
	PostUpdated   = "POST_UPDATED"
	PostPublished = "POST_PUBLISHED"
	PostDeleted   = "POST_DELETED"
)

// OccurredAtKey carries the event time inside the payload so subscribers can
// restore it.
const OccurredAtKey = "occurred_at"

// NewPostEvent builds a post lifecycle event. authorID may be empty.
func NewPostEvent(eventType, postID, title, status, authorID string, at time.Time) BaseEvent {
	data := map[string]interface{}{
		"post_id": postID,
		"title":   title,
		"status":  status,
	}
	if authorID != "" {
		data["author_id"] = authorID
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}

func IsPostEvent(eventType string) bool {
	switch eventType {
	case PostCreated, PostUpdated, PostPublished, PostDeleted:
		return true
	}
	return false
}
