package pipeline

import (
	"time"

	audiometa "github.com/simonhull/audiometa"

	"github.com/anagnostou/laterna/internal/errors"
)

// probedMeta is what the read side recovers from a file's existing
// tags when the run's item metadata leaves a gap.
type probedMeta struct {
	Title  string
	Artist string
}

// probeExisting reads a file's current tags best-effort. Any parse
// problem yields empty metadata; fallback reads must never fail a file
// that the write side could still tag.
func probeExisting(path string) probedMeta {
	f, err := audiometa.Open(path)
	if err != nil {
		return probedMeta{}
	}
	defer f.Close()
	return probedMeta{Title: f.Tags.Title, Artist: f.Tags.Artist}
}

// ProbeDuration reads a file's playable length from its stream info.
func ProbeDuration(path string) (time.Duration, error) {
	f, err := audiometa.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeFormat, "probe duration of %s", path)
	}
	defer f.Close()
	return f.Audio.Duration, nil
}
