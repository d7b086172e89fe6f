// Package normalize provides utilities for normalizing free text before matching.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/anagnostou/laterna/internal/errors"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
// Base characters keep their order and count; no transliteration happens
// (Greek stays Greek, Latin stays Latin).
//
//nolint:gochecknoglobals // Stateless transformer chain, safe to share
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s with diacritics removed and case lowered.
//
// It handles:
//   - Combining diacritics: "Χάρις" -> "χαρις", "café" -> "cafe"
//   - Contextual Greek sigma: "ΠΑΡΙΟΣ" -> "παριος", not "παριοσ"
//   - Null bytes some metadata parsers leave in strings (dropped)
//
// Fold is idempotent: Fold(Fold(s)) == Fold(s).
// Returns an input error if s is not valid UTF-8.
func Fold(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", errors.Input("text is not valid UTF-8")
	}

	s = sanitizeString(s)

	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInput, "strip diacritics")
	}

	// A fresh Caser per call: casers carry casing-context state and are
	// not safe for concurrent use, and Fold runs on parallel workers.
	return cases.Lower(language.Und).String(stripped), nil
}

// MustFold is like Fold but panics on invalid input.
// Use it only on literals and pre-validated catalog data.
func MustFold(s string) string {
	folded, err := Fold(s)
	if err != nil {
		panic("normalize: " + err.Error())
	}
	return folded
}

// sanitizeString removes null bytes from strings, which can cause
// issues in matching and CSV output. Some audio metadata parsers include
// null terminators in strings.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
