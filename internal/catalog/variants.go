package catalog

import (
	"strings"

	"github.com/anagnostou/laterna/internal/normalize"
)

// generateVariants produces the closed set of surface forms a user might
// type for one canonical name, pre-normalized so matching is plain
// substring equality.
//
// For a multi-word name the set is, in order:
//
//	canonical           "χαρις αλεξιου"
//	first/last swapped  "αλεξιου χαρις"
//	initialed forename  "χ. αλεξιου"
//	bare surname        "αλεξιου"
//
// Names of three or more tokens swap only the first and last token.
// Single-token names yield just that token. Duplicates collapse, keeping
// the earliest position, so generation is deterministic: the same name
// always yields the same set in the same order, and the set always
// contains the canonical form first.
func generateVariants(name string) ([]string, error) {
	canonical, err := normalize.Fold(name)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(canonical)
	if len(tokens) == 0 {
		return []string{canonical}, nil
	}

	canonical = strings.Join(tokens, " ")
	if len(tokens) == 1 {
		return []string{canonical}, nil
	}

	first := tokens[0]
	last := tokens[len(tokens)-1]

	swapped := make([]string, len(tokens))
	copy(swapped, tokens)
	swapped[0], swapped[len(tokens)-1] = last, first

	surname := strings.Join(tokens[1:], " ")

	candidates := []string{
		canonical,
		strings.Join(swapped, " "),
		initialForename(first) + " " + surname,
		surname,
	}

	return dedupe(candidates), nil
}

// initialForename abbreviates a forename to its first letter plus a dot.
func initialForename(token string) string {
	for _, r := range token {
		return string(r) + "."
	}
	return token
}

// dedupe drops repeated variants, keeping first occurrence order.
func dedupe(variants []string) []string {
	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
