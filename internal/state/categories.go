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

// categoriesAPI is the remote surface the categories slice needs.
type categoriesAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in api.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in api.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Categories holds the category listing. Categories are admin-managed and
// hard-deleted; there is no soft-delete lifecycle here.
type Categories struct {
	mu    sync.Mutex
	track tracker

	api      categoriesAPI
	validate *validation.Validator
	logger   *slog.Logger

	list *collection[domain.Category]
}

// NewCategories creates the categories slice.
func NewCategories(remote categoriesAPI, v *validation.Validator, ttl time.Duration, logger *slog.Logger) *Categories {
	c := &Categories{
		api:      remote,
		validate: v,
		logger:   logger,
		list:     newCollection(func(cat domain.Category) string { return cat.ID }),
	}
	c.track = newTracker(&c.mu, ttl)
	return c
}

// FetchAll replaces the listing.
func (c *Categories) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	cats, err := c.api.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return err
	}
	c.list.replace(cats)
	return nil
}

// Create adds a category. The slug is derived from the name in the API layer.
func (c *Categories) Create(ctx context.Context, in api.CategoryInput) (*domain.Category, error) {
	if err := c.validate.Validate(in); err != nil {
		c.recordError(err)
		return nil, err
	}

	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	cat, err := c.api.CreateCategory(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return nil, err
	}
	c.list.append(*cat)
	c.logger.Info("category created", slog.String("category_id", cat.ID), slog.String("slug", cat.Slug))
	return cat, nil
}

// Update renames a category; the slug follows the new name.
func (c *Categories) Update(ctx context.Context, id string, in api.CategoryInput) (*domain.Category, error) {
	if err := c.validate.Validate(in); err != nil {
		c.recordError(err)
		return nil, err
	}

	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	cat, err := c.api.UpdateCategory(ctx, id, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return nil, err
	}
	c.list.set(*cat)
	return cat, nil
}

// Delete removes a category permanently.
func (c *Categories) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	c.track.begin()
	c.mu.Unlock()

	err := c.api.DeleteCategory(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track.finish(err)
	if err != nil {
		return err
	}
	c.list.remove(id)
	return nil
}

// All returns the listing in display order.
func (c *Categories) All() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.items()
}

// Get returns one category by id.
func (c *Categories) Get(id string) (domain.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.get(id)
}

// ClearError dismisses the slice's error without touching loading or data.
// Safe to call when no error is present.
func (c *Categories) ClearError() {
	c.mu.Lock()
	c.track.setError("")
	c.mu.Unlock()
}

// Status returns the slice's loading/error pair.
func (c *Categories) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track.status()
}

func (c *Categories) recordError(err error) {
	c.mu.Lock()
	c.track.setError(err.Error())
	c.mu.Unlock()
}
