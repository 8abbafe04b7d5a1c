package api

import (
	"context"
	"fmt"

	"github.com/parleyapp/parley-client/internal/domain"
)

// VoteInput is the payload for casting a vote.
type VoteInput struct {
	UserID        string               `json:"userId" validate:"required"`
	ReferenceID   string               `json:"referenceId" validate:"required"`
	ReferenceType domain.ReferenceType `json:"referenceType" validate:"required,oneof=topic comment"`
	Value         int                  `json:"value" validate:"required,oneof=1 -1"`
}

// VoteResult describes what the server did with a vote: "create", "update"
// (same pair, new value), or "delete" (the vote was toggled off).
type VoteResult struct {
	Action string       `json:"action"`
	Vote   *domain.Vote `json:"vote"`
}

// voteDeleteBody is the payload for vote removal.
type voteDeleteBody struct {
	UserID        string               `json:"userId"`
	ReferenceType domain.ReferenceType `json:"referenceType"`
}

// CreateVote casts or replaces a vote for (userId, referenceId).
func (c *Client) CreateVote(ctx context.Context, in VoteInput) (*VoteResult, error) {
	var out VoteResult
	if err := c.post(ctx, "/votes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVotesByReference returns all votes on a topic or comment.
func (c *Client) ListVotesByReference(ctx context.Context, referenceID string, refType domain.ReferenceType) ([]domain.Vote, error) {
	var out []domain.Vote
	path := fmt.Sprintf("/votes/%s/%s", referenceID, refType)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVote removes the caller's vote on a reference.
func (c *Client) DeleteVote(ctx context.Context, referenceID, userID string, refType domain.ReferenceType) error {
	body := voteDeleteBody{UserID: userID, ReferenceType: refType}
	return c.delete(ctx, "/votes/"+referenceID, body, nil)
}
