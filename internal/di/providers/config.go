// Package providers contains dependency injection providers for the laterna tagger.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/anagnostou/laterna/internal/config"
	"github.com/anagnostou/laterna/internal/logger"
)

// ProvideConfig builds the configuration provider around the parsed
// command-line flags, which only the entry point owns.
func ProvideConfig(flags config.Flags) func(do.Injector) (*config.Config, error) {
	return func(do.Injector) (*config.Config, error) {
		return config.Load(flags)
	}
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting laterna",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"library_path", cfg.Media.LibraryPath,
		"catalog_path", cfg.Catalog.Path,
	)

	return log, nil
}
