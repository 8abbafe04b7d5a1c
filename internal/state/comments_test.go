package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
)

type fakeCommentsAPI struct {
	topicListing *api.TopicComments
	listed       []domain.Comment
	created      *domain.Comment
	updated      *domain.Comment
	deletedID    string
	restored     *domain.Comment

	createCalls int
	onListTopic func() // runs while a topic listing is in flight
}

func (f *fakeCommentsAPI) ListTopicComments(context.Context, string) (*api.TopicComments, error) {
	if f.onListTopic != nil {
		f.onListTopic()
	}
	return f.topicListing, nil
}

func (f *fakeCommentsAPI) ListComments(context.Context, string) ([]domain.Comment, error) {
	return f.listed, nil
}

func (f *fakeCommentsAPI) CreateComment(context.Context, api.CommentInput) (*domain.Comment, error) {
	f.createCalls++
	return f.created, nil
}

func (f *fakeCommentsAPI) UpdateComment(context.Context, string, string) (*domain.Comment, error) {
	return f.updated, nil
}

func (f *fakeCommentsAPI) DeleteComment(context.Context, string) (string, error) {
	return f.deletedID, nil
}

func (f *fakeCommentsAPI) RestoreComment(context.Context, string) (*domain.Comment, error) {
	return f.restored, nil
}

// threadListing is the canonical fixture: two thread roots, with a reply and
// a nested reply under the first.
//
//	cm1 (root) ── cm2 ── cm3
//	cm4 (root)
func threadListing() *api.TopicComments {
	return &api.TopicComments{
		Comments: []domain.Comment{
			{ID: "cm1", TopicID: "t1"},
			{ID: "cm2", TopicID: "t1", ReplyTo: "cm1"},
			{ID: "cm3", TopicID: "t1", ReplyTo: "cm2"},
			{ID: "cm4", TopicID: "t1"},
		},
		CommentCount: 4,
	}
}

func newCommentsFixture(t *testing.T, remote *fakeCommentsAPI) *Comments {
	t.Helper()
	s := NewComments(remote, testValidator(), testTTL, testLogger())
	if remote.topicListing != nil {
		require.NoError(t, s.FetchByTopic(context.Background(), "t1"))
	}
	return s
}

func TestComments_FetchByTopic(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	assert.Len(t, s.All(), 4)
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, "t1", s.TopicID())
}

func TestComments_CreateAppends(t *testing.T) {
	remote := &fakeCommentsAPI{
		topicListing: threadListing(),
		created:      &domain.Comment{ID: "cm5", TopicID: "t1", Content: "new"},
	}
	s := newCommentsFixture(t, remote)

	_, err := s.Create(context.Background(), api.CommentInput{TopicID: "t1", Content: "new"})
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 5)
	assert.Equal(t, "cm5", all[4].ID, "own comments land at the end")
	assert.Equal(t, 5, s.Count())
}

func TestComments_PushAddGoesToFront(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	s.ApplyAdded(domain.Comment{ID: "cm5", TopicID: "t1"})

	all := s.All()
	require.Len(t, all, 5)
	assert.Equal(t, "cm5", all[0].ID, "pushed comments land at the front")
	assert.Equal(t, 5, s.Count())
}

func TestComments_DuplicatePushIsNoOp(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	s.ApplyAdded(domain.Comment{ID: "cm5", TopicID: "t1"})
	s.ApplyAdded(domain.Comment{ID: "cm5", TopicID: "t1"})

	assert.Len(t, s.All(), 5)
	assert.Equal(t, 5, s.Count())
}

func TestComments_OwnCommentSeenTwice(t *testing.T) {
	remote := &fakeCommentsAPI{
		topicListing: threadListing(),
		created:      &domain.Comment{ID: "cm5", TopicID: "t1", Content: "mine"},
	}
	s := newCommentsFixture(t, remote)

	// Push event for our own comment races ahead of the create response.
	s.ApplyAdded(domain.Comment{ID: "cm5", TopicID: "t1", Content: "mine"})
	_, err := s.Create(context.Background(), api.CommentInput{TopicID: "t1", Content: "mine"})
	require.NoError(t, err)

	assert.Len(t, s.All(), 5, "response after push must not duplicate")
	assert.Equal(t, 5, s.Count())
}

func TestComments_PushForOtherTopicIgnored(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	s.ApplyAdded(domain.Comment{ID: "cm9", TopicID: "t-other"})
	s.ApplyUpdated(domain.Comment{ID: "cm1", TopicID: "t-other", Content: "hijack"})

	assert.Len(t, s.All(), 4)
	got, _ := s.Get("cm1")
	assert.Empty(t, got.Content)
}

func TestComments_PushUpdateUnknownIDIgnored(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	s.ApplyUpdated(domain.Comment{ID: "ghost", TopicID: "t1"})

	assert.Len(t, s.All(), 4, "updates never insert")
}

func TestComments_HardDeleteCascadesDirectRepliesOnly(t *testing.T) {
	remote := &fakeCommentsAPI{topicListing: threadListing(), deletedID: "cm1"}
	s := newCommentsFixture(t, remote)

	require.NoError(t, s.HardDelete(context.Background(), "cm1"))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "cm3", all[0].ID, "the grandchild survives, orphaned")
	assert.Equal(t, "cm4", all[1].ID)
	assert.Equal(t, 2, s.Count())
}

func TestComments_PushRemoveMatchesDeleteShape(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	s.ApplyRemoved("cm2")

	all := s.All()
	require.Len(t, all, 2, "cm2 and its direct reply cm3 are gone")
	assert.Equal(t, "cm1", all[0].ID)
	assert.Equal(t, "cm4", all[1].ID)
	assert.Equal(t, 2, s.Count())

	// Removing an id we never held leaves the count alone.
	s.ApplyRemoved("ghost")
	assert.Equal(t, 2, s.Count())
}

func TestComments_UpdateReplacesContent(t *testing.T) {
	remote := &fakeCommentsAPI{
		topicListing: threadListing(),
		updated:      &domain.Comment{ID: "cm1", TopicID: "t1", Content: "edited", IsEdited: true},
	}
	s := newCommentsFixture(t, remote)

	_, err := s.Update(context.Background(), "cm1", "edited")
	require.NoError(t, err)

	got, ok := s.Get("cm1")
	require.True(t, ok)
	assert.Equal(t, "edited", got.Content)
	assert.True(t, got.IsEdited)
}

func TestComments_FetchReplacesMidFlightPush(t *testing.T) {
	remote := &fakeCommentsAPI{topicListing: threadListing()}
	s := newCommentsFixture(t, remote)

	// A push add lands between the fetch dispatch and its commit. The
	// replacement wins: the listing is the server's answer, and the pushed
	// comment reappears on the next event or fetch.
	remote.onListTopic = func() {
		s.ApplyAdded(domain.Comment{ID: "cm9", TopicID: "t1"})
	}
	require.NoError(t, s.FetchByTopic(context.Background(), "t1"))

	_, ok := s.Get("cm9")
	assert.False(t, ok, "the fetched listing overwrites the mid-flight event")
	assert.Len(t, s.All(), 4)
	assert.Equal(t, 4, s.Count(), "the count follows the server's listing")
}

func TestComments_RestoreAlreadyRestoredIsANoOp(t *testing.T) {
	remote := &fakeCommentsAPI{
		topicListing: threadListing(),
		// The comment is live; the server answers with the unchanged record.
		restored: &domain.Comment{ID: "cm1", TopicID: "t1"},
	}
	s := newCommentsFixture(t, remote)
	before := s.All()

	_, err := s.Restore(context.Background(), "cm1")
	require.NoError(t, err)
	assert.Equal(t, before, s.All())

	_, err = s.Restore(context.Background(), "cm1")
	require.NoError(t, err)
	assert.Equal(t, before, s.All(), "restoring twice changes nothing")
	assert.Equal(t, 4, s.Count())
}

func TestComments_ClearErrorTouchesOnlyTheError(t *testing.T) {
	s := newCommentsFixture(t, &fakeCommentsAPI{topicListing: threadListing()})

	_, err := s.Create(context.Background(), api.CommentInput{TopicID: "t1"})
	require.Error(t, err, "empty content fails validation")
	require.NotEmpty(t, s.Status().Err)

	s.ClearError()

	assert.Equal(t, Status{}, s.Status())
	assert.Len(t, s.All(), 4)
	assert.Equal(t, 4, s.Count())
}

func TestComments_FetchAllUnscopes(t *testing.T) {
	remote := &fakeCommentsAPI{
		topicListing: threadListing(),
		listed:       []domain.Comment{{ID: "x1", TopicID: "t1"}, {ID: "x2", TopicID: "t2"}},
	}
	s := newCommentsFixture(t, remote)

	require.NoError(t, s.FetchAll(context.Background(), ""))
	assert.Empty(t, s.TopicID())
	assert.Len(t, s.All(), 2)

	// Unscoped, push adds have no room to land in.
	s.ApplyAdded(domain.Comment{ID: "x3", TopicID: "t1"})
	assert.Len(t, s.All(), 2)
}
