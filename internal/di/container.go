// Package di provides dependency injection configuration for the laterna tagger.
package di

import (
	"github.com/samber/do/v2"

	"github.com/anagnostou/laterna/internal/catalog"
	"github.com/anagnostou/laterna/internal/config"
	"github.com/anagnostou/laterna/internal/di/providers"
	"github.com/anagnostou/laterna/internal/logger"
	"github.com/anagnostou/laterna/internal/pipeline"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(flags config.Flags) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig(flags))
	do.Provide(injector, providers.ProvideLogger)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalog)

	// Tagging layer
	do.Provide(injector, providers.ProvideRenameIndex)
	do.Provide(injector, providers.ProvidePipeline)

	return injector
}

// Bootstrap triggers lazy initialization of every service so that bad
// configuration or a broken catalog fails the run before any file is
// touched.
func Bootstrap(injector *do.RootScope) error {
	services := []func() error{
		func() error { _, err := do.Invoke[*config.Config](injector); return err },
		func() error { _, err := do.Invoke[*logger.Logger](injector); return err },
		func() error { _, err := do.Invoke[*catalog.Catalog](injector); return err },
		func() error { _, err := do.Invoke[pipeline.OriginalFilenameIndex](injector); return err },
		func() error { _, err := do.Invoke[*pipeline.Pipeline](injector); return err },
	}
	for _, invoke := range services {
		if err := invoke(); err != nil {
			return err
		}
	}
	return nil
}
