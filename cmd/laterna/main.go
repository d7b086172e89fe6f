// Package main provides the entry point for the laterna tagging pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/anagnostou/laterna/internal/chapters"
	"github.com/anagnostou/laterna/internal/config"
	"github.com/anagnostou/laterna/internal/di"
	"github.com/anagnostou/laterna/internal/logger"
	"github.com/anagnostou/laterna/internal/pipeline"
)

func main() {
	flags := parseFlags()

	// Create DI container
	injector := di.NewContainer(flags)

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	pipe := do.MustInvoke[*pipeline.Pipeline](injector)

	// One run per invocation; a signal stops new files, in-flight
	// files finish saving.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meta, err := pipeline.LoadItemMeta(cfg.Media.InfoPath)
	if err != nil {
		log.Fatal("Failed to read item metadata", "error", err)
	}

	if cfg.Pipeline.WriteSidecar {
		writeSidecar(log, cfg, meta)
	}

	report, err := pipe.Run(ctx, cfg.Media.LibraryPath, meta)
	if err != nil {
		log.Error("Tagging run aborted", "error", err)
		_ = injector.Shutdown()
		os.Exit(1)
	}

	for _, failure := range report.Failures {
		log.Warn("File left untagged", "file", failure.Path, "reason", failure.Err)
	}

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

// writeSidecar emits the chapter CSV next to the media item when the
// description yields any timestamps. Chapter problems never block
// tagging; the sidecar is a bonus artifact.
func writeSidecar(log *logger.Logger, cfg *config.Config, meta pipeline.ItemMeta) {
	if meta.Description == "" || meta.Duration <= 0 {
		return
	}

	marks := chapters.ParseDescription(meta.Description, log.Logger)
	if len(marks) == 0 {
		return
	}
	segments, err := chapters.BuildSegments(marks, meta.Duration)
	if err != nil {
		log.Warn("Chapter timestamps rejected", "error", err)
		return
	}

	path := filepath.Join(cfg.Media.LibraryPath, meta.Title+".csv")
	f, err := os.Create(path)
	if err != nil {
		log.Warn("Failed to create chapter sidecar", "path", path, "error", err)
		return
	}
	defer f.Close()

	info := chapters.SidecarInfo{
		Title:      meta.Title,
		Uploader:   meta.Uploader,
		URL:        meta.URL,
		UploadDate: meta.UploadDate,
	}
	if err := chapters.WriteSidecar(f, info, segments); err != nil {
		log.Warn("Failed to write chapter sidecar", "path", path, "error", err)
		return
	}
	log.Info("Chapter sidecar written", "path", path, "chapters", len(segments))
}

func parseFlags() config.Flags {
	var flags config.Flags
	flag.StringVar(&flags.Env, "env", "", "Environment (development, staging, production)")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&flags.CatalogPath, "catalog", "", "Path to the artist catalog JSON")
	flag.StringVar(&flags.LibraryPath, "library", "", "Folder of downloaded media to tag")
	flag.StringVar(&flags.RenameLogPath, "rename-log", "", "Organizer rename log (default: {library}/renames.json)")
	flag.StringVar(&flags.InfoPath, "info", "", "Downloader item metadata JSON (default: {library}/item.json)")
	flag.StringVar(&flags.Workers, "workers", "", "Concurrent file taggers (default: number of CPUs)")
	flag.StringVar(&flags.UploaderFallback, "uploader-fallback", "", "Match artists against the uploader name when titles fail (default: false)")
	flag.StringVar(&flags.WriteSidecar, "write-sidecar", "", "Emit chapter CSV sidecars (default: true)")
	flag.StringVar(&flags.EnvFile, "env-file", ".env", "Path to .env file")
	flag.Parse()
	return flags
}
