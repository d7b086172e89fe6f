// Package tags provides a format-agnostic capability set over embedded
// audio metadata, with one concrete variant per container format.
//
// Callers depend only on the Handler interface and the closed Field
// vocabulary; translation to native frame ids, atom keys, or comment
// keys happens inside a variant. The orchestration layer never branches
// on format.
package tags

import (
	"path/filepath"
	"strings"

	"github.com/anagnostou/laterna/internal/errors"
)

// Field is one entry of the closed, format-agnostic tag vocabulary.
type Field string

const (
	FieldTitle       Field = "title"
	FieldArtist      Field = "artist"
	FieldAlbumArtist Field = "album-artist"
	FieldAlbum       Field = "album"
	FieldDate        Field = "date"
	FieldComment     Field = "comment"
	// FieldProvenance stores the recoverable pre-sanitization filename.
	// Each variant designates its own native home for it.
	FieldProvenance Field = "provenance"
)

// TagSet is a format-agnostic value set over the Field vocabulary.
// Zero values mean "leave the field alone".
type TagSet struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Date        string
	Comment     string
	Provenance  string
	// TrackNumber zero means unset; use Handler.ClearTrackNumber to
	// actively remove a stale number.
	TrackNumber int
	// Picture is raw embedded artwork; MIME is sniffed from the bytes.
	Picture []byte
}

// Container is an opaque in-memory representation of one file's
// embedded metadata prior to persistence. Containers are only valid
// with the Handler that opened them.
type Container interface {
	// Path returns the file the container was opened from.
	Path() string
}

// Handler is the uniform capability set all format variants satisfy.
//
// Error contract: Open fails with a format error when the file cannot
// be parsed as the variant's container format; Save fails with an io
// error and never silently drops writes. Neither mutates the file until
// Save.
type Handler interface {
	// Name identifies the variant in logs.
	Name() string

	Open(path string) (Container, error)

	Get(c Container, field Field) (string, error)
	Set(c Container, field Field, value string) error

	// HandleFormatQuirks applies variant-specific normalization that
	// is not expressible as a field mapping.
	HandleFormatQuirks(c Container) error

	HasTrackNumber(c Container) bool
	SetTrackNumber(c Container, n int) error
	ClearTrackNumber(c Container) error

	// SetOriginalFilename writes the provenance field: the
	// recoverable pre-sanitization filename.
	SetOriginalFilename(c Container, original string) error

	// EmbedPicture replaces the embedded front-cover artwork.
	EmbedPicture(c Container, data []byte) error

	Save(c Container) error
	Close(c Container) error
}

// Apply sets every non-zero field of ts on the container.
func Apply(h Handler, c Container, ts TagSet) error {
	set := func(field Field, value string) error {
		if value == "" {
			return nil
		}
		return h.Set(c, field, value)
	}

	if err := set(FieldTitle, ts.Title); err != nil {
		return err
	}
	if err := set(FieldArtist, ts.Artist); err != nil {
		return err
	}
	if err := set(FieldAlbumArtist, ts.AlbumArtist); err != nil {
		return err
	}
	if err := set(FieldAlbum, ts.Album); err != nil {
		return err
	}
	if err := set(FieldDate, ts.Date); err != nil {
		return err
	}
	if err := set(FieldComment, ts.Comment); err != nil {
		return err
	}
	if ts.Provenance != "" {
		if err := h.SetOriginalFilename(c, ts.Provenance); err != nil {
			return err
		}
	}
	if ts.TrackNumber > 0 {
		if err := h.SetTrackNumber(c, ts.TrackNumber); err != nil {
			return err
		}
	}
	if len(ts.Picture) > 0 {
		if err := h.EmbedPicture(c, ts.Picture); err != nil {
			return err
		}
	}
	return nil
}

// ForFile returns the handler variant for a file's container format,
// selected by extension the same way the external organizer groups
// files. Unsupported extensions fail with a format error.
func ForFile(path string) (Handler, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return NewID3Handler(), nil
	case ".m4a", ".m4b", ".mp4":
		return NewMP4Handler(), nil
	case ".flac":
		return NewFLACHandler(), nil
	default:
		return nil, errors.Formatf("no tag handler for %s", filepath.Ext(path))
	}
}

// wrongContainer is the shared guard for containers handed to the wrong
// variant. That is always a programming error, not a file problem.
func wrongContainer(handler string, c Container) error {
	return errors.Internalf("%s handler given container of type %T", handler, c)
}

// detectImageMIME sniffs the image format from raw artwork bytes.
// Unknown data falls back to JPEG, the overwhelmingly common case for
// downloaded thumbnails.
func detectImageMIME(data []byte) string {
	switch {
	case len(data) >= 4 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "image/png"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "image/jpeg"
	case len(data) >= 12 &&
		data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P':
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// collapseDateToYear keeps only the leading year of a full date value
// ("2023-06-15" or "20230615" become "2023"). Values without a leading
// four-digit year pass through unchanged.
func collapseDateToYear(date string) string {
	if len(date) < 4 {
		return date
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return date
		}
	}
	return year
}
