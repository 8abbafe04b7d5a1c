package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-client/internal/config"
	"github.com/parleyapp/parley-client/internal/localstore"
	"github.com/parleyapp/parley-client/internal/session"
)

// LocalStoreHandle wraps the local store with shutdown capability.
type LocalStoreHandle struct {
	*localstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *LocalStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideLocalStore provides the durable local store.
func ProvideLocalStore(i do.Injector) (*LocalStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	store, err := localstore.Open(cfg.Data.Dir, log)
	if err != nil {
		return nil, err
	}

	log.Info("local store opened", "dir", cfg.Data.Dir)
	return &LocalStoreHandle{Store: store}, nil
}

// ProvideSession provides the shared session store, seeded from local state.
func ProvideSession(i do.Injector) (*session.Store, error) {
	log := do.MustInvoke[*slog.Logger](i)
	store := do.MustInvoke[*LocalStoreHandle](i)

	sess := session.New(store.Store, log)
	sess.Restore()
	return sess, nil
}
