package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
)

type fakeUsersAPI struct {
	listed []domain.User
}

func (f *fakeUsersAPI) ListUsers(context.Context) ([]domain.User, error) {
	return f.listed, nil
}

func (f *fakeUsersAPI) ActivateUser(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, IsActive: true}, nil
}

func (f *fakeUsersAPI) DeactivateUser(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, IsActive: false}, nil
}

func (f *fakeUsersAPI) BanUser(_ context.Context, id string, in api.BanInput) (*domain.User, error) {
	var expires *time.Time
	if in.Duration != nil {
		t := time.Now().Add(time.Duration(*in.Duration) * time.Hour)
		expires = &t
	}
	return &domain.User{ID: id, IsActive: true, BanStatus: domain.BanStatus{
		IsBanned:   true,
		BanExpires: expires,
		BanReason:  in.Reason,
	}}, nil
}

func (f *fakeUsersAPI) UnbanUser(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, IsActive: true}, nil
}

func newUsersFixture(t *testing.T) *Users {
	t.Helper()
	remote := &fakeUsersAPI{listed: []domain.User{
		{ID: "u1", Username: "alice", IsActive: true},
		{ID: "u2", Username: "bob", IsActive: true},
	}}
	s := NewUsers(remote, testValidator(), testTTL, testLogger())
	require.NoError(t, s.FetchAll(context.Background()))
	return s
}

func TestUsers_DeactivateAndActivate(t *testing.T) {
	s := newUsersFixture(t)

	_, err := s.Deactivate(context.Background(), "u2")
	require.NoError(t, err)
	got, _ := s.Get("u2")
	assert.False(t, got.IsActive)

	_, err = s.Activate(context.Background(), "u2")
	require.NoError(t, err)
	got, _ = s.Get("u2")
	assert.True(t, got.IsActive)
}

func TestUsers_PermanentBan(t *testing.T) {
	s := newUsersFixture(t)

	banned, err := s.Ban(context.Background(), "u2", api.BanInput{Reason: "spam"})
	require.NoError(t, err)
	assert.True(t, banned.BanStatus.IsBanned)
	assert.Nil(t, banned.BanStatus.BanExpires, "nil duration means permanent")
	assert.True(t, banned.BanStatus.Banned(time.Now().Add(24*365*time.Hour)))

	got, _ := s.Get("u2")
	assert.Equal(t, "spam", got.BanStatus.BanReason)

	_, err = s.Unban(context.Background(), "u2")
	require.NoError(t, err)
	got, _ = s.Get("u2")
	assert.False(t, got.BanStatus.IsBanned)
}

func TestUsers_TimedBanExpires(t *testing.T) {
	s := newUsersFixture(t)

	hours := 24
	banned, err := s.Ban(context.Background(), "u1", api.BanInput{Duration: &hours, Reason: "cooling off"})
	require.NoError(t, err)
	require.NotNil(t, banned.BanStatus.BanExpires)
	assert.True(t, banned.BanStatus.Banned(time.Now()))
	assert.False(t, banned.BanStatus.Banned(time.Now().Add(48*time.Hour)), "the ban lapses on its own")
}

func TestUsers_BanRequiresReason(t *testing.T) {
	s := newUsersFixture(t)

	_, err := s.Ban(context.Background(), "u1", api.BanInput{})
	require.Error(t, err)
	assert.NotEmpty(t, s.Status().Err)
}

func TestUsers_OrderPreserved(t *testing.T) {
	s := newUsersFixture(t)

	_, err := s.Deactivate(context.Background(), "u1")
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "u1", all[0].ID, "moderation edits never reorder the listing")
}
