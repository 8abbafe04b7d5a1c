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

// topicsAPI is the remote surface the topics slice needs.
type topicsAPI interface {
	LatestTopics(ctx context.Context) ([]domain.Topic, error)
	ListTopics(ctx context.Context, search string) ([]domain.Topic, error)
	GetTopic(ctx context.Context, id string) (*domain.Topic, error)
	CreateTopic(ctx context.Context, in api.TopicInput) (*domain.Topic, error)
	UpdateTopic(ctx context.Context, id string, in api.TopicInput) (*domain.Topic, error)
	SoftDeleteTopic(ctx context.Context, id string) (*domain.Topic, error)
	RestoreTopic(ctx context.Context, id string) (*domain.Topic, error)
}

// Topics holds the topic listing plus the currently viewed topic.
type Topics struct {
	mu    sync.Mutex
	track tracker

	api      topicsAPI
	validate *validation.Validator
	logger   *slog.Logger

	list    *collection[domain.Topic]
	current *domain.Topic
}

// NewTopics creates the topics slice.
func NewTopics(remote topicsAPI, v *validation.Validator, ttl time.Duration, logger *slog.Logger) *Topics {
	t := &Topics{
		api:      remote,
		validate: v,
		logger:   logger,
		list:     newCollection(func(topic domain.Topic) string { return topic.ID }),
	}
	t.track = newTracker(&t.mu, ttl)
	return t
}

// FetchLatest replaces the listing with the newest topics, newest first.
func (t *Topics) FetchLatest(ctx context.Context) error {
	t.mu.Lock()
	t.track.begin()
	t.mu.Unlock()

	topics, err := t.api.LatestTopics(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.track.finish(err)
	if err != nil {
		return err
	}
	t.list.replace(topics)
	return nil
}

// FetchAll replaces the listing with every topic, optionally filtered by a
// search term. Deleted topics are included for moderation views.
func (t *Topics) FetchAll(ctx context.Context, search string) error {
	t.mu.Lock()
	t.track.begin()
	t.mu.Unlock()

	topics, err := t.api.ListTopics(ctx, search)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.track.finish(err)
	if err != nil {
		return err
	}
	t.list.replace(topics)
	return nil
}

// FetchByID loads one topic into the current slot, refreshing the listing
// copy when the topic is already listed.
func (t *Topics) FetchByID(ctx context.Context, id string) error {
	t.mu.Lock()
	t.track.begin()
	t.mu.Unlock()

	topic, err := t.api.GetTopic(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.track.finish(err)
	if err != nil {
		return err
	}
	t.current = topic
	t.list.set(*topic)
	return nil
}

// Create posts a new topic. The server's record lands at the front of the
// listing, where a fresh topic is shown.
func (t *Topics) Create(ctx context.Context, in api.TopicInput) (*domain.Topic, error) {
	if err := t.validate.Validate(in); err != nil {
		t.recordError(err)
		return nil, err
	}

	t.mu.Lock()
	t.track.begin()
	t.mu.Unlock()

	topic, err := t.api.CreateTopic(ctx, in)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.track.finish(err)
	if err != nil {
		return nil, err
	}
	t.list.prepend(*topic)
	t.logger.Info("topic created", slog.String("topic_id", topic.ID))
	return topic, nil
}

// Update replaces a topic's editable fields with the server's record.
func (t *Topics) Update(ctx context.Context, id string, in api.TopicInput) (*domain.Topic, error) {
	if err := t.validate.Validate(in); err != nil {
		t.recordError(err)
		return nil, err
	}
	return t.commit(ctx, func(ctx context.Context) (*domain.Topic, error) {
		return t.api.UpdateTopic(ctx, id, in)
	})
}

// SoftDelete marks a topic deleted. The record stays in the listing with its
// deleted flag set; moderation views still show it.
func (t *Topics) SoftDelete(ctx context.Context, id string) (*domain.Topic, error) {
	return t.commit(ctx, func(ctx context.Context) (*domain.Topic, error) {
		return t.api.SoftDeleteTopic(ctx, id)
	})
}

// Restore clears a topic's deleted flag.
func (t *Topics) Restore(ctx context.Context, id string) (*domain.Topic, error) {
	return t.commit(ctx, func(ctx context.Context) (*domain.Topic, error) {
		return t.api.RestoreTopic(ctx, id)
	})
}

// commit runs a remote mutation and folds the returned record back into the
// listing and, when it is the viewed topic, the current slot.
func (t *Topics) commit(ctx context.Context, call func(context.Context) (*domain.Topic, error)) (*domain.Topic, error) {
	t.mu.Lock()
	t.track.begin()
	t.mu.Unlock()

	topic, err := call(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.track.finish(err)
	if err != nil {
		return nil, err
	}
	t.list.set(*topic)
	if t.current != nil && t.current.ID == topic.ID {
		t.current = topic
	}
	return topic, nil
}

// ClearCurrent drops the viewed topic when its view is exited.
func (t *Topics) ClearCurrent() {
	t.mu.Lock()
	t.current = nil
	t.mu.Unlock()
}

// All returns the listing in display order.
func (t *Topics) All() []domain.Topic {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.list.items()
}

// Current returns a copy of the viewed topic, or nil.
func (t *Topics) Current() *domain.Topic {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	topic := *t.current
	return &topic
}

// ClearError dismisses the slice's error without touching loading or data.
// Safe to call when no error is present.
func (t *Topics) ClearError() {
	t.mu.Lock()
	t.track.setError("")
	t.mu.Unlock()
}

// Status returns the slice's loading/error pair.
func (t *Topics) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.track.status()
}

func (t *Topics) recordError(err error) {
	t.mu.Lock()
	t.track.setError(err.Error())
	t.mu.Unlock()
}
