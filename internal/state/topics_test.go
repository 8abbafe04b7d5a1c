package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/errors"
)

type fakeTopicsAPI struct {
	latest    []domain.Topic
	latestErr error
	listed    []domain.Topic
	single    *domain.Topic
	created   *domain.Topic
	updated   *domain.Topic
}

func (f *fakeTopicsAPI) LatestTopics(context.Context) ([]domain.Topic, error) {
	return f.latest, f.latestErr
}

func (f *fakeTopicsAPI) ListTopics(context.Context, string) ([]domain.Topic, error) {
	return f.listed, nil
}

func (f *fakeTopicsAPI) GetTopic(context.Context, string) (*domain.Topic, error) {
	return f.single, nil
}

func (f *fakeTopicsAPI) CreateTopic(context.Context, api.TopicInput) (*domain.Topic, error) {
	return f.created, nil
}

func (f *fakeTopicsAPI) UpdateTopic(context.Context, string, api.TopicInput) (*domain.Topic, error) {
	return f.updated, nil
}

func (f *fakeTopicsAPI) SoftDeleteTopic(_ context.Context, id string) (*domain.Topic, error) {
	return &domain.Topic{ID: id, IsDeleted: true}, nil
}

func (f *fakeTopicsAPI) RestoreTopic(_ context.Context, id string) (*domain.Topic, error) {
	return &domain.Topic{ID: id, IsDeleted: false}, nil
}

func validTopicInput() api.TopicInput {
	return api.TopicInput{Title: "Generics in practice", Content: "body", CategoryID: "c1"}
}

func TestTopics_FetchLatestReplaces(t *testing.T) {
	remote := &fakeTopicsAPI{latest: []domain.Topic{{ID: "t2"}, {ID: "t1"}}}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())

	require.NoError(t, s.FetchLatest(context.Background()))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "t2", all[0].ID, "server order is preserved, newest first")
	assert.Equal(t, Status{}, s.Status())
}

func TestTopics_CreateGoesToFront(t *testing.T) {
	remote := &fakeTopicsAPI{
		latest:  []domain.Topic{{ID: "t1"}},
		created: &domain.Topic{ID: "t-new", Title: "Generics in practice"},
	}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())
	require.NoError(t, s.FetchLatest(context.Background()))

	topic, err := s.Create(context.Background(), validTopicInput())
	require.NoError(t, err)
	assert.Equal(t, "t-new", topic.ID)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "t-new", all[0].ID, "a fresh topic is shown first")
}

func TestTopics_CreateValidatesBeforeNetwork(t *testing.T) {
	s := NewTopics(&fakeTopicsAPI{}, testValidator(), testTTL, testLogger())

	_, err := s.Create(context.Background(), api.TopicInput{Title: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.NotEmpty(t, s.Status().Err)
}

func TestTopics_SoftDeleteKeepsRecord(t *testing.T) {
	remote := &fakeTopicsAPI{latest: []domain.Topic{{ID: "t1"}, {ID: "t2"}}}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())
	require.NoError(t, s.FetchLatest(context.Background()))

	topic, err := s.SoftDelete(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, topic.IsDeleted)

	all := s.All()
	require.Len(t, all, 2, "soft delete never removes the row")
	assert.True(t, all[0].IsDeleted)

	restored, err := s.Restore(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.False(t, s.All()[0].IsDeleted)
}

func TestTopics_FetchByIDSyncsCurrent(t *testing.T) {
	remote := &fakeTopicsAPI{
		latest:  []domain.Topic{{ID: "t1", Title: "old title"}},
		single:  &domain.Topic{ID: "t1", Title: "fresh title"},
		updated: &domain.Topic{ID: "t1", Title: "edited title"},
	}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())
	require.NoError(t, s.FetchLatest(context.Background()))

	require.NoError(t, s.FetchByID(context.Background(), "t1"))
	require.NotNil(t, s.Current())
	assert.Equal(t, "fresh title", s.Current().Title)
	assert.Equal(t, "fresh title", s.All()[0].Title, "listing copy is refreshed too")

	_, err := s.Update(context.Background(), "t1", validTopicInput())
	require.NoError(t, err)
	assert.Equal(t, "edited title", s.Current().Title, "current follows the update")

	s.ClearCurrent()
	assert.Nil(t, s.Current())
}

func TestTopics_ErrorClearsAfterTTL(t *testing.T) {
	remote := &fakeTopicsAPI{latestErr: errors.Transport("connection refused")}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())

	require.Error(t, s.FetchLatest(context.Background()))
	assert.Equal(t, "connection refused", s.Status().Err)

	assert.Eventually(t, func() bool {
		return s.Status().Err == ""
	}, time.Second, 10*time.Millisecond, "slice errors expire on their own")
}

func TestTopics_ClearErrorTouchesOnlyTheError(t *testing.T) {
	remote := &fakeTopicsAPI{latest: []domain.Topic{{ID: "t1"}}}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())
	require.NoError(t, s.FetchLatest(context.Background()))

	remote.latestErr = errors.Transport("connection refused")
	require.Error(t, s.FetchLatest(context.Background()))
	require.NotEmpty(t, s.Status().Err)

	s.ClearError()

	assert.Equal(t, Status{}, s.Status())
	assert.Len(t, s.All(), 1, "dismissing an error leaves the data alone")

	// Idempotent: clearing with nothing to clear changes nothing.
	s.ClearError()
	assert.Equal(t, Status{}, s.Status())
}

func TestTopics_RestoreAlreadyRestoredIsANoOp(t *testing.T) {
	remote := &fakeTopicsAPI{latest: []domain.Topic{{ID: "t1"}, {ID: "t2"}}}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())
	require.NoError(t, s.FetchLatest(context.Background()))
	before := s.All()

	// The topic is live; the server answers restore with the unchanged record.
	restored, err := s.Restore(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Equal(t, before, s.All())

	_, err = s.Restore(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, before, s.All(), "restoring twice changes nothing")
}

func TestTopics_NewErrorOutlivesStaleTimer(t *testing.T) {
	remote := &fakeTopicsAPI{latestErr: errors.Transport("first failure")}
	s := NewTopics(remote, testValidator(), testTTL, testLogger())

	require.Error(t, s.FetchLatest(context.Background()))
	time.Sleep(testTTL / 2)

	remote.latestErr = errors.Transport("second failure")
	require.Error(t, s.FetchLatest(context.Background()))

	// Past the first error's expiry, the second must still be visible.
	time.Sleep(testTTL * 3 / 4)
	assert.Equal(t, "second failure", s.Status().Err)
}
