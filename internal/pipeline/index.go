package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/anagnostou/laterna/internal/errors"
)

// OriginalFilenameIndex maps sanitized media paths to the filenames
// they carried before the organizer renamed them. The index is built
// externally and read-only here; it feeds the provenance tag field and
// nothing else.
type OriginalFilenameIndex map[string]string

// Lookup returns the original filename recorded for path, trying the
// exact path first and the bare filename second, since the organizer
// records entries relative to the folder it renamed in.
func (idx OriginalFilenameIndex) Lookup(path string) (string, bool) {
	if original, ok := idx[path]; ok {
		return original, true
	}
	original, ok := idx[filepath.Base(path)]
	return original, ok
}

// LoadOriginalFilenameIndex reads the organizer's rename log, a flat
// JSON object of current name to original name. A missing file is not
// an error; it just means no file gets a provenance tag this run.
func LoadOriginalFilenameIndex(path string) (OriginalFilenameIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OriginalFilenameIndex{}, nil
		}
		return nil, errors.Wrapf(err, errors.CodeIO, "read rename log %s", path)
	}

	var idx OriginalFilenameIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInput, "parse rename log %s", path)
	}
	return idx, nil
}
