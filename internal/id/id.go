// Package id generates the short unique identifiers that correlate log
// lines and reports belonging to one tagging run.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a prefixed NanoID, e.g. "run-V1StGXR8_Z5jdHi6B-myT".
// NanoIDs are URL-friendly and shorter than UUIDs, which keeps log lines
// readable.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate panics when the system cannot supply secure randomness.
// Use it only at run startup, where that failure should abort anyway.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
