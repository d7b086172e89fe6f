package providers

import (
	"github.com/samber/do/v2"

	"github.com/anagnostou/laterna/internal/catalog"
	"github.com/anagnostou/laterna/internal/config"
	"github.com/anagnostou/laterna/internal/logger"
	"github.com/anagnostou/laterna/internal/pipeline"
)

// ProvideRenameIndex loads the organizer's rename log. A missing log
// only means no provenance tags this run.
func ProvideRenameIndex(i do.Injector) (pipeline.OriginalFilenameIndex, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	idx, err := pipeline.LoadOriginalFilenameIndex(cfg.Media.RenameLogPath)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		log.Debug("No rename log entries, provenance tags skipped",
			"path", cfg.Media.RenameLogPath,
		)
	}
	return idx, nil
}

// ProvidePipeline assembles the tagging pipeline.
func ProvidePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	idx := do.MustInvoke[pipeline.OriginalFilenameIndex](i)

	return pipeline.New(log.Logger, cat, idx, pipeline.Options{
		Workers:          cfg.Pipeline.Workers,
		UploaderFallback: cfg.Pipeline.UploaderFallback,
	}), nil
}
