package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/validation"
)

// commentsAPI is the remote surface the comments slice needs.
type commentsAPI interface {
	ListTopicComments(ctx context.Context, topicID string) (*api.TopicComments, error)
	ListComments(ctx context.Context, search string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, in api.CommentInput) (*domain.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) (string, error)
	RestoreComment(ctx context.Context, id string) (*domain.Comment, error)
}

// Comments holds the flat comment list for one topic plus the server's
// comment count. Two producers mutate it: the request/response path and the
// push channel. Both converge on the same insert/update/remove rules, so
// hearing about your own comment twice (response, then push event) is safe.
type Comments struct {
	mu    sync.Mutex
	track tracker

	api      commentsAPI
	validate *validation.Validator
	logger   *slog.Logger

	list    *collection[domain.Comment]
	topicID string
	count   int
}

// NewComments creates the comments slice.
func NewComments(remote commentsAPI, v *validation.Validator, ttl time.Duration, logger *slog.Logger) *Comments {
	c := &Comments{
		api:      remote,
		validate: v,
		logger:   logger,
		list:     newCollection(func(cm domain.Comment) string { return cm.ID }),
	}
	c.track = newTracker(&c.mu, ttl)
	return c
}

// FetchByTopic replaces the list with one topic's comments and scopes the
// slice to that topic: push events for other topics are ignored afterwards.
func (c *Comments) FetchByTopic(ctx context.Context, topicID string) error {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	out, err := c.api.ListTopicComments(ctx, topicID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return err
	}
	c.list.replace(out.Comments)
	c.topicID = topicID
	c.count = out.CommentCount
	return nil
}

// FetchAll replaces the list with comments across every topic, optionally
// filtered. Moderation views use this; the slice is unscoped afterwards.
func (c *Comments) FetchAll(ctx context.Context, search string) error {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	comments, err := c.api.ListComments(ctx, search)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return err
	}
	c.list.replace(comments)
	c.topicID = ""
	c.count = c.list.len()
	return nil
}

// Create posts a comment and appends the server's record. If the push event
// for our own comment arrives first, the append falls back to an in-place
// replace and the count is left alone.
func (c *Comments) Create(ctx context.Context, in api.CommentInput) (*domain.Comment, error) {
	if err := c.validate.Validate(in); err != nil {
		c.recordError(err)
		return nil, err
	}

	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	comment, err := c.api.CreateComment(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return nil, err
	}
	if _, seen := c.list.get(comment.ID); seen {
		c.list.set(*comment)
	} else {
		c.list.append(*comment)
		c.count++
	}
	c.logger.Info("comment created", slog.String("comment_id", comment.ID))
	return comment, nil
}

// Update replaces a comment's content with the server's record.
func (c *Comments) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	comment, err := c.api.UpdateComment(ctx, id, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return nil, err
	}
	c.list.set(*comment)
	return comment, nil
}

// HardDelete removes a comment permanently. Direct replies go with it; deeper
// descendants are left in place and simply lose their thread parent.
func (c *Comments) HardDelete(ctx context.Context, id string) error {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	deletedID, err := c.api.DeleteComment(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return err
	}
	c.removeWithReplies(deletedID)
	return nil
}

// Restore clears a comment's deleted flag.
func (c *Comments) Restore(ctx context.Context, id string) (*domain.Comment, error) {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	comment, err := c.api.RestoreComment(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return nil, err
	}
	c.list.set(*comment)
	return comment, nil
}

// ApplyAdded is the push channel entry point for a new comment. Comments for
// other topics and ids already present are ignored; a fresh one goes to the
// front, where a just-arrived comment is shown.
func (c *Comments) ApplyAdded(comment domain.Comment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.topicID == "" || comment.TopicID != c.topicID {
		return
	}
	if c.list.prependIfAbsent(comment) {
		c.count++
	}
}

// ApplyUpdated is the push channel entry point for an edited comment.
// Updates for ids we do not hold are dropped, not inserted.
func (c *Comments) ApplyUpdated(comment domain.Comment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.topicID == "" || comment.TopicID != c.topicID {
		return
	}
	c.list.set(comment)
}

// ApplyRemoved is the push channel entry point for a deleted comment. The
// same direct-reply rule as HardDelete applies, so both producers leave the
// list in the same shape.
func (c *Comments) ApplyRemoved(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeWithReplies(id)
}

// removeWithReplies drops a comment and its direct replies, adjusting the
// count. Assumes the lock is held.
func (c *Comments) removeWithReplies(id string) {
	removed := 0
	if c.list.remove(id) {
		removed++
	}
	removed += c.list.removeWhere(func(cm domain.Comment) bool { return cm.ReplyTo == id })
	if removed > 0 {
		c.count -= removed
		if c.count < 0 {
			c.count = 0
		}
	}
}

// All returns the comments in display order.
func (c *Comments) All() []domain.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.items()
}

// Get returns one comment by id.
func (c *Comments) Get(id string) (domain.Comment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.get(id)
}

// Count returns the server-reported comment count, adjusted by local
// inserts and removals since the last fetch.
func (c *Comments) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// TopicID returns the topic the list is scoped to, or empty for the
// cross-topic moderation listing.
func (c *Comments) TopicID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topicID
}

// ClearError dismisses the slice's error without touching loading or data.
// Safe to call when no error is present.
func (c *Comments) ClearError() {
	c.mu.Lock()
	c.track.setError("")
	c.mu.Unlock()
}

// Status returns the slice's loading/error pair.
func (c *Comments) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track.status()
}

func (c *Comments) recordError(err error) {
	c.mu.Lock()
	c.track.setError(err.Error())
	c.mu.Unlock()
}
