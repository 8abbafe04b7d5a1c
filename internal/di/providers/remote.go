package providers

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/config"
	"github.com/parleyapp/parley-client/internal/push"
	"github.com/parleyapp/parley-client/internal/session"
	"github.com/parleyapp/parley-client/internal/state"
)

// ProvideAPIClient provides the forum API client with the session as its
// credential source, so any 401 tears the session down.
func ProvideAPIClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	sess := do.MustInvoke[*session.Store](i)

	return api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		RPS:     cfg.API.RPS,
		Burst:   cfg.API.Burst,
	}, sess, log), nil
}

// PushChannelHandle wraps the push channel for lifecycle management.
type PushChannelHandle struct {
	*push.Client
}

// Shutdown implements do.Shutdownable.
func (h *PushChannelHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvidePushChannel provides the push channel wired to the comments slice,
// connected in the background.
func ProvidePushChannel(i do.Injector) (*PushChannelHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	sess := do.MustInvoke[*session.Store](i)
	comments := do.MustInvoke[*state.Comments](i)

	channel := push.New(push.Config{
		URL: cfg.Push.URL,
		Reconnect: push.ReconnectPolicy{
			MaxAttempts: cfg.Push.ReconnectAttempts,
			Delay:       cfg.Push.ReconnectDelay,
		},
	}, sess, push.Handlers{
		CommentAdded:   comments.ApplyAdded,
		CommentUpdated: comments.ApplyUpdated,
		CommentDeleted: comments.ApplyRemoved,
	}, log)

	channel.Connect(context.Background())
	log.Info("push channel connecting", "url", cfg.Push.URL)

	return &PushChannelHandle{Client: channel}, nil
}
