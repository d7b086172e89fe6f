// Package catalog provides the artist catalog: canonical records, generated
// matching variants, and free-text artist lookup.
package catalog

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/anagnostou/laterna/internal/errors"
)

// Record is one canonical artist entry.
//
// Records are immutable after the catalog is loaded. The variant set is
// generated once at load time so matching is pure lookup.
type Record struct {
	// Name is the single authoritative display spelling.
	Name string `json:"name" validate:"required"`
	// Lang is an optional BCP 47 language tag for the display spelling.
	Lang string `json:"lang,omitempty" validate:"omitempty,bcp47_language_tag"`
	// SourceID identifies the record in the upstream catalog file.
	SourceID string `json:"id,omitempty"`

	variants []string
}

// Variants returns the record's pre-normalized surface forms in
// generation order. The returned slice must not be modified.
func (r *Record) Variants() []string {
	return r.variants
}

// catalogFile is the on-disk shape of the versioned catalog.
type catalogFile struct {
	Version int      `json:"version"`
	Artists []Record `json:"artists" validate:"required,min=1,dive"`
}

// Catalog holds all artist records for one run.
// It is read-only after Load and safe for concurrent use.
type Catalog struct {
	version int
	records []Record
}

//nolint:gochecknoglobals // Validator instance is stateless and safe to share
var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a versioned catalog file, generating the
// variant set for every record. Called once at startup; the result is
// immutable during the run.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeIO, "read catalog %s", path)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInput, "parse catalog %s", path)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInput, "invalid catalog %s", path)
	}

	return build(file.Version, file.Artists)
}

// New builds a catalog from in-memory records. Primarily for tests and
// embedding callers that manage their own catalog source.
func New(records []Record) (*Catalog, error) {
	return build(0, records)
}

func build(version int, records []Record) (*Catalog, error) {
	out := make([]Record, len(records))
	for i, rec := range records {
		variants, err := generateVariants(rec.Name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeInput, "record %q", rec.Name)
		}
		rec.variants = variants
		out[i] = rec
	}

	return &Catalog{version: version, records: out}, nil
}

// Version returns the catalog file's version, 0 for in-memory catalogs.
func (c *Catalog) Version() int {
	return c.version
}

// Records returns all records in catalog iteration order.
// The returned slice must not be modified.
func (c *Catalog) Records() []Record {
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}
