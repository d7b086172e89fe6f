package providers

import (
	"github.com/samber/do/v2"

	"github.com/anagnostou/laterna/internal/catalog"
	"github.com/anagnostou/laterna/internal/config"
	"github.com/anagnostou/laterna/internal/logger"
)

// ProvideCatalog loads the artist catalog once per run.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	log.Info("Artist catalog loaded",
		"path", cfg.Catalog.Path,
		"version", cat.Version(),
		"artists", cat.Len(),
	)
	return cat, nil
}
