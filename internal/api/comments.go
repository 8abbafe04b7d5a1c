package api

import (
	"context"
	"net/url"

	"github.com/parleyapp/parley-client/internal/domain"
)

// CommentInput is the payload for comment creation. An empty ReplyTo creates
// a thread root.
type CommentInput struct {
	TopicID string `json:"topicId" validate:"required"`
	Content string `json:"content" validate:"required,max=10000"`
	ReplyTo string `json:"replyTo,omitempty"`
}

// TopicComments is the topic-scoped listing payload.
type TopicComments struct {
	Comments     []domain.Comment `json:"comments"`
	CommentCount int              `json:"commentCount"`
}

// commentEnvelope wraps single-comment responses from the update endpoint.
type commentEnvelope struct {
	Comment domain.Comment `json:"comment"`
}

// deleteResult carries the id of a hard-deleted comment.
type deleteResult struct {
	CommentID string `json:"commentId"`
}

// ListTopicComments returns all comments on one topic plus the server's count.
func (c *Client) ListTopicComments(ctx context.Context, topicID string) (*TopicComments, error) {
	var out TopicComments
	if err := c.get(ctx, "/comments/topic/"+topicID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComments returns all comments across topics, optionally filtered.
// Moderation views use this.
func (c *Client) ListComments(ctx context.Context, search string) ([]domain.Comment, error) {
	path := "/comments"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out []domain.Comment
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a comment and returns the server's record.
func (c *Client) CreateComment(ctx context.Context, in CommentInput) (*domain.Comment, error) {
	var out domain.Comment
	if err := c.post(ctx, "/comments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment replaces a comment's content and returns the updated record.
func (c *Client) UpdateComment(ctx context.Context, id, content string) (*domain.Comment, error) {
	var out commentEnvelope
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	if err := c.put(ctx, "/comments/"+id, body, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// DeleteComment removes a comment and returns the deleted id.
func (c *Client) DeleteComment(ctx context.Context, id string) (string, error) {
	var out deleteResult
	if err := c.delete(ctx, "/comments/"+id, nil, &out); err != nil {
		return "", err
	}
	return out.CommentID, nil
}

// RestoreComment clears a comment's deleted flag and returns the updated record.
func (c *Client) RestoreComment(ctx context.Context, id string) (*domain.Comment, error) {
	var out domain.Comment
	if err := c.patch(ctx, "/comments/"+id+"/restore", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
