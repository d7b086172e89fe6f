// Package pipeline runs the unified tagging pass over one folder of
// downloaded media: classify each file, resolve artist attribution
// against the catalog, apply format quirks, fix track numbers, record
// provenance, and save. Files are independent; one bad file never
// stops the batch.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/anagnostou/laterna/internal/catalog"
	"github.com/anagnostou/laterna/internal/chapters"
	"github.com/anagnostou/laterna/internal/errors"
	"github.com/anagnostou/laterna/internal/tags"
)

// ItemMeta is the downloader-provided metadata for the media item a
// folder was produced from. Fields may be empty; the pipeline fills
// gaps from the files' existing tags where it can.
type ItemMeta struct {
	Title       string
	Uploader    string
	URL         string
	UploadDate  string
	Description string
	// Duration is the full item length in seconds, used by the
	// chapter builder, not by per-file tagging.
	Duration int
}

// Options tune one pipeline instance.
type Options struct {
	// Workers caps concurrent file tagging; zero means NumCPU.
	Workers int
	// UploaderFallback lets the matcher consult the uploader name
	// when the title yields no catalog artist.
	UploaderFallback bool
}

// Pipeline tags every media file in a folder. Construct once per
// catalog; Run may be called for many folders.
type Pipeline struct {
	log     *slog.Logger
	catalog *catalog.Catalog
	index   OriginalFilenameIndex
	opts    Options
}

func New(log *slog.Logger, cat *catalog.Catalog, index OriginalFilenameIndex, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if index == nil {
		index = OriginalFilenameIndex{}
	}
	return &Pipeline{log: log, catalog: cat, index: index, opts: opts}
}

// Run tags every media file directly inside dir. Per-file failures are
// logged and counted but do not abort the batch. Cancelling ctx stops
// new files from being picked up; files already being tagged finish
// their open-to-save sequence so no file is left half written.
func (p *Pipeline) Run(ctx context.Context, dir string, meta ItemMeta) (Report, error) {
	session := NewSession()
	log := p.log.With("run_id", session.ID, "folder", dir)

	files, err := listMediaFiles(dir, session)
	if err != nil {
		return session.Report(), err
	}
	log.Info("tagging run started", "files", len(files))

	g := new(errgroup.Group)
	g.SetLimit(p.opts.Workers)

	for _, path := range files {
		select {
		case <-ctx.Done():
			g.Wait()
			log.Warn("tagging run cancelled", "cause", context.Cause(ctx))
			return session.Report(), ctx.Err()
		default:
		}

		g.Go(func() error {
			if err := p.tagFile(path, meta); err != nil {
				session.recordFailure(path, err)
				log.Error("file tagging failed",
					"file", filepath.Base(path),
					"error", err,
				)
				return nil
			}
			session.recordTagged()
			return nil
		})
	}

	g.Wait()
	report := session.Report()
	log.Info("tagging run finished",
		"tagged", report.Tagged,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

// tagFile runs the full sequence for one file: classify, open, derive
// title and artist, quirks, track number, provenance, save.
func (p *Pipeline) tagFile(path string, meta ItemMeta) error {
	cls := Classify(path)

	handler, err := tags.ForFile(path)
	if err != nil {
		return err
	}
	c, err := handler.Open(path)
	if err != nil {
		return err
	}
	defer handler.Close(c)

	title := meta.Title
	if cls.Chaptered {
		title = cls.ChapterTitle
	}
	if title == "" {
		title = probeExisting(path).Title
	}
	if title != "" {
		if err := handler.Set(c, tags.FieldTitle, title); err != nil {
			return err
		}
	}

	if artist, ok := p.matchArtist(title, meta); ok {
		if err := handler.Set(c, tags.FieldArtist, artist); err != nil {
			return err
		}
		if err := handler.Set(c, tags.FieldAlbumArtist, artist); err != nil {
			return err
		}
	}

	if meta.UploadDate != "" {
		if err := handler.Set(c, tags.FieldDate, meta.UploadDate); err != nil {
			return err
		}
	}
	if meta.URL != "" {
		if err := handler.Set(c, tags.FieldComment, meta.URL); err != nil {
			return err
		}
	}

	if err := handler.HandleFormatQuirks(c); err != nil {
		return err
	}

	if cls.Chaptered {
		if err := handler.SetTrackNumber(c, cls.ChapterIndex); err != nil {
			return err
		}
		if album := albumName(cls.BaseTitle, meta.UploadDate); album != "" {
			if err := handler.Set(c, tags.FieldAlbum, album); err != nil {
				return err
			}
		}
	} else if handler.HasTrackNumber(c) {
		// Downloaders leave playlist positions behind; a standalone
		// recording should not pretend to be track N of anything.
		if err := handler.ClearTrackNumber(c); err != nil {
			return err
		}
	}

	if original, ok := p.index.Lookup(path); ok {
		if err := handler.SetOriginalFilename(c, original); err != nil {
			return err
		}
	}

	return handler.Save(c)
}

// matchArtist resolves catalog attribution for one file. The file's
// own title is tried first, then the parent item title, since chapter
// titles rarely repeat the performer. The uploader fallback runs last
// and only when enabled.
func (p *Pipeline) matchArtist(title string, meta ItemMeta) (string, bool) {
	if p.catalog == nil {
		return "", false
	}
	if name, ok := p.catalog.Match(title); ok {
		return name, true
	}
	if meta.Title != "" && meta.Title != title {
		if name, ok := p.catalog.Match(meta.Title); ok {
			return name, true
		}
	}
	if p.opts.UploaderFallback && meta.Uploader != "" {
		return p.catalog.MatchWithOptions("", catalog.MatchOptions{
			Uploader:         meta.Uploader,
			UploaderFallback: true,
		})
	}
	return "", false
}

// albumName builds the album title for a chaptered item, the base
// title followed by the upload year in parentheses.
func albumName(baseTitle, uploadDate string) string {
	if baseTitle == "" {
		return ""
	}
	if year := chapters.YearFromUploadDate(uploadDate); year != "" {
		return baseTitle + " (" + year + ")"
	}
	return baseTitle
}

// listMediaFiles returns the taggable files directly inside dir in
// name order. The organizer keeps one format per folder and never
// nests, so the walk is a flat read. Files no handler claims are
// counted as skipped.
func listMediaFiles(dir string, session *Session) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "read media folder %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := tags.ForFile(path); err != nil {
			session.recordSkipped()
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
