package api

import (
	"context"
	"net/url"

	"github.com/parleyapp/parley-client/internal/domain"
)

// TopicInput is the payload for topic create/update.
type TopicInput struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Content    string   `json:"content" validate:"required"`
	CategoryID string   `json:"categoryId" validate:"required"`
	Tags       []string `json:"tags,omitempty"`
}

// LatestTopics returns the newest topics, newest first.
func (c *Client) LatestTopics(ctx context.Context) ([]domain.Topic, error) {
	var out []domain.Topic
	if err := c.get(ctx, "/topics/latest", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTopics returns all topics, optionally filtered by a search term.
// Moderation views use this; deleted topics are included.
func (c *Client) ListTopics(ctx context.Context, search string) ([]domain.Topic, error) {
	path := "/topics"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out []domain.Topic
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTopic returns a single topic by id.
func (c *Client) GetTopic(ctx context.Context, id string) (*domain.Topic, error) {
	var out domain.Topic
	if err := c.get(ctx, "/topics/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTopic creates a topic and returns the server's record.
func (c *Client) CreateTopic(ctx context.Context, in TopicInput) (*domain.Topic, error) {
	var out domain.Topic
	if err := c.post(ctx, "/topics", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTopic replaces a topic's editable fields.
func (c *Client) UpdateTopic(ctx context.Context, id string, in TopicInput) (*domain.Topic, error) {
	var out domain.Topic
	if err := c.put(ctx, "/topics/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SoftDeleteTopic marks a topic deleted and returns the updated record.
func (c *Client) SoftDeleteTopic(ctx context.Context, id string) (*domain.Topic, error) {
	var out domain.Topic
	if err := c.patch(ctx, "/topics/"+id+"/delete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreTopic clears a topic's deleted flag and returns the updated record.
func (c *Client) RestoreTopic(ctx context.Context, id string) (*domain.Topic, error) {
	var out domain.Topic
	if err := c.patch(ctx, "/topics/"+id+"/restore", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
