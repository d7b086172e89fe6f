package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anagnostou/laterna/internal/normalize"
)

// MatchOptions controls optional match sources.
type MatchOptions struct {
	// Uploader is consulted only when the primary text yields no match
	// and UploaderFallback is set.
	Uploader         string
	UploaderFallback bool
}

// Match scans free text for any catalog variant and resolves it to the
// canonical display name.
//
// The text is normalized once; every record's pre-normalized variants
// are then tested as word-boundary-respecting substrings. Ties resolve
// to the longest matched variant, then to the record earliest in catalog
// iteration order, so results are deterministic for a given catalog.
//
// A false return is a definite "no artist present" outcome, not an
// error; Match never fails, even on text that is not valid UTF-8.
func (c *Catalog) Match(text string) (string, bool) {
	return c.MatchWithOptions(text, MatchOptions{})
}

// MatchWithOptions is Match with an optional uploader fallback source.
// Title-only matching is the default; the fallback is separately
// switchable because uploader channels often carry label names rather
// than artist names.
func (c *Catalog) MatchWithOptions(text string, opts MatchOptions) (string, bool) {
	if name, ok := c.matchOne(text); ok {
		return name, true
	}
	if opts.UploaderFallback && opts.Uploader != "" {
		return c.matchOne(opts.Uploader)
	}
	return "", false
}

func (c *Catalog) matchOne(text string) (string, bool) {
	folded, err := normalize.Fold(text)
	if err != nil {
		// Unmatchable input is indistinguishable from text that
		// mentions no catalog artist.
		return "", false
	}

	best := -1
	bestLen := 0
	for i := range c.records {
		for _, variant := range c.records[i].variants {
			if variant == "" {
				continue
			}
			if !occursAsWord(folded, variant) {
				continue
			}
			if n := utf8.RuneCountInString(variant); n > bestLen {
				best = i
				bestLen = n
			}
		}
	}

	if best < 0 {
		return "", false
	}
	return c.records[best].Name, true
}

// occursAsWord reports whether needle occurs in haystack with word
// boundaries on both sides. A boundary is the text edge or any rune that
// is neither letter nor digit.
func occursAsWord(haystack, needle string) bool {
	for start := 0; start <= len(haystack)-len(needle); {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		if boundaryBefore(haystack, idx) && boundaryAfter(haystack, idx+len(needle)) {
			return true
		}
		start = idx + 1
	}
	return false
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
