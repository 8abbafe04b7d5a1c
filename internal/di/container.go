// Package di provides dependency injection configuration for the Parley client.
package di

import (
	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-client/internal/di/providers"
	"github.com/parleyapp/parley-client/internal/state"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Durable local state
	do.Provide(injector, providers.ProvideLocalStore)
	do.Provide(injector, providers.ProvideSession)

	// Remote surfaces
	do.Provide(injector, providers.ProvideAPIClient)
	do.Provide(injector, providers.ProvidePushChannel)

	// Entity slices
	do.Provide(injector, providers.ProvideAuth)
	do.Provide(injector, providers.ProvideTopics)
	do.Provide(injector, providers.ProvideCategories)
	do.Provide(injector, providers.ProvideComments)
	do.Provide(injector, providers.ProvideUsers)
	do.Provide(injector, providers.ProvideVotes)
	do.Provide(injector, providers.ProvideThread)

	// View support
	do.Provide(injector, providers.ProvideGuard)
	do.Provide(injector, providers.ProvideMarkup)

	return injector
}

// Bootstrap triggers lazy initialization of the core graph so construction
// errors surface at startup rather than on first use.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*providers.LocalStoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*state.Auth](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*state.Votes](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.PushChannelHandle](injector); err != nil {
		return err
	}
	return nil
}
