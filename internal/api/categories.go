package api

import (
	"context"

	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/util"
)

// CategoryInput is the payload for category create/update. The slug is
// derived from Name client-side; callers never supply it.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=500"`
}

// categoryPayload is the wire shape with the derived slug attached.
type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

func (in CategoryInput) payload() categoryPayload {
	return categoryPayload{
		Name:        in.Name,
		Description: in.Description,
		Slug:        util.Slugify(in.Name),
	}
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory creates a category with a client-derived slug.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	var out domain.Category
	if err := c.post(ctx, "/categories", in.payload(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory updates a category, re-deriving the slug from the new name.
func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	var out domain.Category
	if err := c.put(ctx, "/categories/"+id, in.payload(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category permanently.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/categories/"+id, nil, nil)
}
