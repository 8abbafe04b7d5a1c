// Package push implements the real-time channel for comment lifecycle events.
//
// The server pushes events over a long-lived stream; room membership is
// controlled with explicit joinTopic/leaveTopic calls scoped to one topic.
package push

import (
	"github.com/parleyapp/parley-client/internal/domain"
)

// EventType represents the kind of a pushed event.
type EventType string

const (
	// EventCommentAdded carries a full comment record for a new comment.
	EventCommentAdded EventType = "commentAdded"
	// EventCommentUpdated carries the full updated comment record.
	EventCommentUpdated EventType = "commentUpdated"
	// EventCommentDeleted carries only the deleted comment's id.
	EventCommentDeleted EventType = "commentDeleted"
)

// CommentDeletedPayload is the data payload for comment delete events.
type CommentDeletedPayload struct {
	ID string `json:"id"`
}

// Handlers receives decoded events. These are the same mutation entry points
// the comment slice exposes to its request/response path, so both producers
// converge on one state-update contract.
type Handlers struct {
	CommentAdded   func(domain.Comment)
	CommentUpdated func(domain.Comment)
	CommentDeleted func(id string)
}

// joinPayload is the control payload for room membership changes.
type joinPayload struct {
	TopicID string `json:"topicId"`
}
