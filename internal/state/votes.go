package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/localstore"
	"github.com/parleyapp/parley-client/internal/validation"
)

// keyVotes is where the vote cache lives in the local store.
const keyVotes = "votes/all"

// votesAPI is the remote surface the votes slice needs.
type votesAPI interface {
	CreateVote(ctx context.Context, in api.VoteInput) (*api.VoteResult, error)
	ListVotesByReference(ctx context.Context, referenceID string, refType domain.ReferenceType) ([]domain.Vote, error)
	DeleteVote(ctx context.Context, referenceID, userID string, refType domain.ReferenceType) error
}

// Votes holds every vote the client knows about, keyed by the
// (user, reference) pair. The set is mirrored to the local store so scores
// render immediately on the next start, before any fetch completes.
type Votes struct {
	mu    sync.Mutex
	track tracker

	api      votesAPI
	validate *validation.Validator
	persist  *localstore.Store
	logger   *slog.Logger

	votes map[string]domain.Vote
}

// NewVotes creates the votes slice. A nil persist disables the local mirror.
func NewVotes(remote votesAPI, v *validation.Validator, persist *localstore.Store, ttl time.Duration, logger *slog.Logger) *Votes {
	vs := &Votes{
		api:      remote,
		validate: v,
		persist:  persist,
		logger:   logger,
		votes:    make(map[string]domain.Vote),
	}
	vs.track = newTracker(&vs.mu, ttl)
	return vs
}

func voteKey(userID, referenceID string) string {
	return userID + "|" + referenceID
}

// Restore seeds the vote set from the local mirror. Called once at startup;
// missing state is not an error.
func (v *Votes) Restore() {
	if v.persist == nil {
		return
	}
	var cached []domain.Vote
	if err := v.persist.Get(keyVotes, &cached); err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			v.logger.Warn("failed to restore vote cache", "error", err)
		}
		return
	}

	v.mu.Lock()
	for _, vote := range cached {
		v.votes[voteKey(vote.UserID, vote.ReferenceID)] = vote
	}
	v.mu.Unlock()
	v.logger.Debug("vote cache restored", slog.Int("votes", len(cached)))
}

// Cast sends a vote. The server decides whether that creates, replaces, or —
// when the same value is cast twice — removes the vote, and the local set
// follows its verdict.
func (v *Votes) Cast(ctx context.Context, in api.VoteInput) (*api.VoteResult, error) {
	if err := v.validate.Validate(in); err != nil {
		v.mu.Lock()
		v.track.setError(err.Error())
		v.mu.Unlock()
		return nil, err
	}

	v.mu.Lock()
	v.track.begin()
	v.mu.Unlock()

	result, err := v.api.CreateVote(ctx, in)

	v.mu.Lock()
	v.track.finish(err)
	if err != nil {
		v.mu.Unlock()
		return nil, err
	}
	switch {
	case result.Action == "delete":
		delete(v.votes, voteKey(in.UserID, in.ReferenceID))
	case result.Vote != nil:
		v.votes[voteKey(result.Vote.UserID, result.Vote.ReferenceID)] = *result.Vote
	}
	v.mu.Unlock()

	v.mirror()
	return result, nil
}

// FetchByReference refreshes every vote on one topic or comment. Votes for
// other references are untouched; the fetched reference's set is replaced
// wholesale so remotely removed votes disappear.
func (v *Votes) FetchByReference(ctx context.Context, referenceID string, refType domain.ReferenceType) error {
	v.mu.Lock()
	v.track.begin()
	v.mu.Unlock()

	fetched, err := v.api.ListVotesByReference(ctx, referenceID, refType)

	v.mu.Lock()
	v.track.finish(err)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	for key, vote := range v.votes {
		if vote.ReferenceID == referenceID {
			delete(v.votes, key)
		}
	}
	for _, vote := range fetched {
		v.votes[voteKey(vote.UserID, vote.ReferenceID)] = vote
	}
	v.mu.Unlock()

	v.mirror()
	return nil
}

// Remove withdraws a user's vote on a reference.
func (v *Votes) Remove(ctx context.Context, referenceID, userID string, refType domain.ReferenceType) error {
	v.mu.Lock()
	v.track.begin()
	v.mu.Unlock()

	err := v.api.DeleteVote(ctx, referenceID, userID, refType)

	v.mu.Lock()
	v.track.finish(err)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	delete(v.votes, voteKey(userID, referenceID))
	v.mu.Unlock()

	v.mirror()
	return nil
}

// ClearLocal wipes the in-memory set and the local mirror. Called on logout;
// the server's votes are untouched.
func (v *Votes) ClearLocal() {
	v.mu.Lock()
	v.votes = make(map[string]domain.Vote)
	v.mu.Unlock()

	if v.persist != nil {
		if err := v.persist.Delete(keyVotes); err != nil {
			v.logger.Warn("failed to clear vote cache", "error", err)
		}
	}
}

// ForReference returns every known vote on a reference.
func (v *Votes) ForReference(referenceID string) []domain.Vote {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []domain.Vote
	for _, vote := range v.votes {
		if vote.ReferenceID == referenceID {
			out = append(out, vote)
		}
	}
	return out
}

// Score returns the sum of vote values on a reference.
func (v *Votes) Score(referenceID string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	score := 0
	for _, vote := range v.votes {
		if vote.ReferenceID == referenceID {
			score += vote.Value
		}
	}
	return score
}

// UserVote returns the given user's vote on a reference, or nil.
func (v *Votes) UserVote(userID, referenceID string) *domain.Vote {
	v.mu.Lock()
	defer v.mu.Unlock()
	if vote, ok := v.votes[voteKey(userID, referenceID)]; ok {
		return &vote
	}
	return nil
}

// ClearError dismisses the slice's error without touching loading or data.
// Safe to call when no error is present.
func (v *Votes) ClearError() {
	v.mu.Lock()
	v.track.setError("")
	v.mu.Unlock()
}

// Status returns the slice's loading/error pair.
func (v *Votes) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.track.status()
}

// mirror writes the vote set to the local store.
func (v *Votes) mirror() {
	if v.persist == nil {
		return
	}

	v.mu.Lock()
	all := make([]domain.Vote, 0, len(v.votes))
	for _, vote := range v.votes {
		all = append(all, vote)
	}
	v.mu.Unlock()

	if err := v.persist.Put(keyVotes, all); err != nil {
		v.logger.Warn("failed to mirror vote cache", "error", err)
	}
}
