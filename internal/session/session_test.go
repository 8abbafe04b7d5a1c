package session

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/localstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ls, err := localstore.OpenInMemory(testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ls.Close() })
	return New(ls, testLogger())
}

func profile() *domain.Profile {
	return &domain.Profile{ID: "u1", Username: "casey", Email: "casey@example.com", Role: domain.RoleUser}
}

func TestAuthenticated_RequiresTokenAndUser(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.Authenticated())

	s.Set("tok", profile())
	assert.True(t, s.Authenticated())

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestSnapshot_Invariant(t *testing.T) {
	s := newTestStore(t)

	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)

	s.Set("tok", profile())
	snap = s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "tok", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "casey", snap.User.Username)
}

func TestRestore_RoundTrip(t *testing.T) {
	ls, err := localstore.OpenInMemory(testLogger())
	require.NoError(t, err)
	defer ls.Close()

	first := New(ls, testLogger())
	first.Set("tok", profile())

	// A fresh store over the same backing data picks the session up again.
	second := New(ls, testLogger())
	assert.False(t, second.Authenticated())
	second.Restore()
	assert.True(t, second.Authenticated())
	assert.Equal(t, "tok", second.Token())
}

func TestRestore_AfterClear(t *testing.T) {
	ls, err := localstore.OpenInMemory(testLogger())
	require.NoError(t, err)
	defer ls.Close()

	first := New(ls, testLogger())
	first.Set("tok", profile())
	first.Clear()

	second := New(ls, testLogger())
	second.Restore()
	assert.False(t, second.Authenticated())
}

func TestInvalidate_ClearsSession(t *testing.T) {
	s := newTestStore(t)
	s.Set("tok", profile())

	// 401 reaction path.
	s.Invalidate()
	assert.False(t, s.Authenticated())
}

func TestUser_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.Set("tok", profile())

	u := s.User()
	u.Username = "mallory"
	assert.Equal(t, "casey", s.User().Username)
}
