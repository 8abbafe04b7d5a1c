package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/config"
	"github.com/parleyapp/parley-client/internal/guard"
	"github.com/parleyapp/parley-client/internal/markup"
	"github.com/parleyapp/parley-client/internal/session"
	"github.com/parleyapp/parley-client/internal/state"
	"github.com/parleyapp/parley-client/internal/validation"
)

// ProvideAuth provides the auth slice.
func ProvideAuth(i do.Injector) (*state.Auth, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return state.NewAuth(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*session.Store](i),
		do.MustInvoke[*validation.Validator](i),
		cfg.State.ErrorTTL,
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideTopics provides the topics slice.
func ProvideTopics(i do.Injector) (*state.Topics, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return state.NewTopics(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*validation.Validator](i),
		cfg.State.ErrorTTL,
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideCategories provides the categories slice.
func ProvideCategories(i do.Injector) (*state.Categories, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return state.NewCategories(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*validation.Validator](i),
		cfg.State.ErrorTTL,
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideComments provides the comments slice.
func ProvideComments(i do.Injector) (*state.Comments, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return state.NewComments(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*validation.Validator](i),
		cfg.State.ErrorTTL,
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideUsers provides the users slice.
func ProvideUsers(i do.Injector) (*state.Users, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return state.NewUsers(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*validation.Validator](i),
		cfg.State.ErrorTTL,
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideVotes provides the votes slice, seeded from the local mirror.
func ProvideVotes(i do.Injector) (*state.Votes, error) {
	cfg := do.MustInvoke[*config.Config](i)
	store := do.MustInvoke[*LocalStoreHandle](i)

	votes := state.NewVotes(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*validation.Validator](i),
		store.Store,
		cfg.State.ErrorTTL,
		do.MustInvoke[*slog.Logger](i),
	)
	votes.Restore()
	return votes, nil
}

// ProvideThread provides the thread view over the comments slice.
func ProvideThread(i do.Injector) (*state.Thread, error) {
	return state.NewThread(do.MustInvoke[*state.Comments](i)), nil
}

// ProvideGuard provides the route guard.
func ProvideGuard(i do.Injector) (*guard.Guard, error) {
	return guard.New(do.MustInvoke[*slog.Logger](i)), nil
}

// ProvideMarkup provides the markdown renderer for composer previews.
func ProvideMarkup(i do.Injector) (*markup.Renderer, error) {
	return markup.New(), nil
}
