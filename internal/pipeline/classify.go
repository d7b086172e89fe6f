package pipeline

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	audiometa "github.com/simonhull/audiometa"
)

// chapterFilePattern matches the organizer's split-file naming,
// "<base> - <index> - <title>.<ext>". Titles may themselves contain
// " - ", so the index anchors the split.
var chapterFilePattern = regexp.MustCompile(`^(.+) - (\d+) - (.+)$`)

// FileClassification describes one media file before tagging.
type FileClassification struct {
	Path   string
	Format audiometa.Format

	// Chaptered is set when the filename follows the split-file
	// convention; the remaining fields are only meaningful then.
	Chaptered    bool
	BaseTitle    string
	ChapterIndex int
	ChapterTitle string
}

// Classify inspects a media file's name and content. Format detection
// reads the file header and falls back to the extension; detection
// failure leaves FormatUnknown rather than failing classification,
// since the tag handler will surface a real error on open.
func Classify(path string) FileClassification {
	cls := FileClassification{Path: path, Format: detectFormat(path)}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := chapterFilePattern.FindStringSubmatch(stem)
	if m == nil {
		return cls
	}
	index, err := strconv.Atoi(m[2])
	if err != nil || index < 1 {
		return cls
	}
	cls.Chaptered = true
	cls.BaseTitle = m[1]
	cls.ChapterIndex = index
	cls.ChapterTitle = m[3]
	return cls
}

func detectFormat(path string) audiometa.Format {
	f, err := os.Open(path)
	if err != nil {
		return audiometa.FormatUnknown
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return audiometa.FormatUnknown
	}
	format, err := audiometa.DetectFormat(f, info.Size(), path)
	if err != nil {
		return audiometa.FormatUnknown
	}
	return format
}
