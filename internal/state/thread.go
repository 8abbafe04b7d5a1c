package state

import (
	"context"
	"sync"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/errors"
	"github.com/parleyapp/parley-client/internal/id"
	"github.com/parleyapp/parley-client/internal/util"
)

// Thread is the view over the flat comment list as a reply tree. Roots and
// children are computed on demand from the comments slice, never stored, so
// the tree can never disagree with the list it came from.
//
// Reply visibility and in-progress drafts are view concerns and live here,
// keyed by parent comment id. Replies start collapsed.
type Thread struct {
	mu       sync.Mutex
	comments *Comments
	expanded map[string]bool
	drafts   map[string]*ReplyDraft
}

// ReplyDraft is an in-progress reply to one comment.
type ReplyDraft struct {
	ID       string
	ParentID string
	Content  string
}

// NewThread creates the thread view over a comments slice.
func NewThread(comments *Comments) *Thread {
	return &Thread{
		comments: comments,
		expanded: make(map[string]bool),
		drafts:   make(map[string]*ReplyDraft),
	}
}

// Roots returns the thread roots in the list's display order.
func (t *Thread) Roots() []domain.Comment {
	var roots []domain.Comment
	for _, cm := range t.comments.All() {
		if cm.IsRoot() {
			roots = append(roots, cm)
		}
	}
	return roots
}

// Children returns the direct replies to one comment, in display order.
func (t *Thread) Children(parentID string) []domain.Comment {
	var children []domain.Comment
	for _, cm := range t.comments.All() {
		if cm.ReplyTo == parentID {
			children = append(children, cm)
		}
	}
	return children
}

// Expanded reports whether a comment's replies are shown. Unknown ids are
// collapsed, the default.
func (t *Thread) Expanded(commentID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expanded[commentID]
}

// Toggle flips a comment's reply visibility and returns the new state.
func (t *Thread) Toggle(commentID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expanded[commentID] = !t.expanded[commentID]
	return t.expanded[commentID]
}

// StartReply opens a draft replying to parent, prefilled with a mention of
// the parent's author. Starting a second reply to the same comment returns
// the existing draft untouched.
func (t *Thread) StartReply(parent domain.Comment) *ReplyDraft {
	t.mu.Lock()
	defer t.mu.Unlock()

	if draft, ok := t.drafts[parent.ID]; ok {
		copied := *draft
		return &copied
	}

	draft := &ReplyDraft{
		ID:       id.MustGenerate("draft"),
		ParentID: parent.ID,
		Content:  util.Mention(parent.Author.Username),
	}
	t.drafts[parent.ID] = draft
	copied := *draft
	return &copied
}

// Draft returns the in-progress reply to a comment, or nil.
func (t *Thread) Draft(parentID string) *ReplyDraft {
	t.mu.Lock()
	defer t.mu.Unlock()
	if draft, ok := t.drafts[parentID]; ok {
		copied := *draft
		return &copied
	}
	return nil
}

// SetDraftContent replaces the draft text as the user types.
func (t *Thread) SetDraftContent(parentID, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if draft, ok := t.drafts[parentID]; ok {
		draft.Content = content
	}
}

// Submit posts the draft as a reply. On success the draft is discarded and
// the parent's replies are expanded so the new comment is visible. Submitting
// with no open draft is a not-found error.
func (t *Thread) Submit(ctx context.Context, parentID string) (*domain.Comment, error) {
	t.mu.Lock()
	draft, ok := t.drafts[parentID]
	if !ok {
		t.mu.Unlock()
		return nil, errors.NotFound("no reply draft for comment")
	}
	content := draft.Content
	t.mu.Unlock()

	comment, err := t.comments.Create(ctx, api.CommentInput{
		TopicID: t.comments.TopicID(),
		Content: content,
		ReplyTo: parentID,
	})
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	delete(t.drafts, parentID)
	t.expanded[parentID] = true
	t.mu.Unlock()
	return comment, nil
}

// Cancel discards the in-progress reply to a comment.
func (t *Thread) Cancel(parentID string) {
	t.mu.Lock()
	delete(t.drafts, parentID)
	t.mu.Unlock()
}

// Reset drops all view state. Called when the topic view is exited.
func (t *Thread) Reset() {
	t.mu.Lock()
	t.expanded = make(map[string]bool)
	t.drafts = make(map[string]*ReplyDraft)
	t.mu.Unlock()
}
