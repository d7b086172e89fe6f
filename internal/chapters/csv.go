package chapters

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anagnostou/laterna/internal/errors"
)

// SidecarInfo carries the parent media metadata echoed into the sidecar
// comment lines and inherited columns.
type SidecarInfo struct {
	Title      string
	Uploader   string
	URL        string
	UploadDate string // YYYYMMDD as reported by the acquisition tool
}

// sidecarHeader is the fixed column order of the chapter sidecar. The
// trailing columns are left empty by this tool and filled in by hand
// before any re-tagging pass.
//
//nolint:gochecknoglobals // Fixed wire format
var sidecarHeader = []string{
	"start time", "end time", "song name", "original song name",
	"artist name", "album name", "year", "composer", "comments",
}

// WriteSidecar emits the chapter CSV sidecar: three #-prefixed comment
// lines (parent title, uploader, URL), the header row, then one row per
// segment with HHMMSS offsets.
func WriteSidecar(w io.Writer, info SidecarInfo, segments []Segment) error {
	for _, comment := range []string{info.Title, info.Uploader, info.URL} {
		if _, err := fmt.Fprintf(w, "# %s\n", comment); err != nil {
			return errors.Wrap(err, errors.CodeIO, "write sidecar comment")
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sidecarHeader); err != nil {
		return errors.Wrap(err, errors.CodeIO, "write sidecar header")
	}

	year := YearFromUploadDate(info.UploadDate)
	for _, seg := range segments {
		rowYear := seg.Year
		if rowYear == "" {
			rowYear = year
		}
		row := []string{
			formatOffset(seg.Start),
			formatOffset(seg.End),
			seg.Title,
			"", // original song name
			"", // artist name
			seg.Album,
			rowYear,
			"", // composer
			"", // comments
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.CodeIO, "write sidecar row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.CodeIO, "flush sidecar")
	}
	return nil
}

// WriteSidecarFile writes the sidecar next to the media item, replacing
// the media extension with .csv.
func WriteSidecarFile(mediaPath string, info SidecarInfo, segments []Segment) (string, error) {
	path := SidecarPath(mediaPath)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.CodeIO, "create sidecar %s", path)
	}

	if err := WriteSidecar(f, info, segments); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, errors.CodeIO, "close sidecar %s", path)
	}
	return path, nil
}

// SidecarPath returns the sidecar path for a media file.
func SidecarPath(mediaPath string) string {
	ext := filepath.Ext(mediaPath)
	return strings.TrimSuffix(mediaPath, ext) + ".csv"
}

// YearFromUploadDate extracts the year from a YYYYMMDD upload date.
// Returns empty for anything too short to contain one.
func YearFromUploadDate(uploadDate string) string {
	if len(uploadDate) < 4 {
		return ""
	}
	year := uploadDate[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}

// formatOffset renders a second offset as zero-padded HHMMSS
// ("000300" is three minutes).
func formatOffset(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d%02d%02d", h, m, s)
}
