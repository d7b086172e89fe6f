package pipeline

import (
	"sync"
	"time"

	"github.com/anagnostou/laterna/internal/id"
)

// Session carries the explicit per-run state: a run identifier and the
// report being accumulated. Nothing about a run hides in package-level
// variables, so two runs never bleed into each other.
type Session struct {
	ID        string
	StartedAt time.Time

	mu     sync.Mutex
	report Report
}

// FileFailure records one file the run could not tag.
type FileFailure struct {
	Path string
	Err  string
}

// Report aggregates the outcome of one run. Failed counts files whose
// tagging was attempted and failed; Skipped counts files no handler
// claims, such as sidecars sitting in the same folder.
type Report struct {
	RunID    string
	Tagged   int
	Failed   int
	Skipped  int
	Failures []FileFailure
}

// NewSession starts a run with a fresh identifier.
func NewSession() *Session {
	return &Session{
		ID:        id.MustGenerate("run"),
		StartedAt: time.Now(),
	}
}

func (s *Session) recordTagged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.Tagged++
}

func (s *Session) recordSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.Skipped++
}

func (s *Session) recordFailure(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.Failed++
	s.report.Failures = append(s.report.Failures, FileFailure{Path: path, Err: err.Error()})
}

// Report returns a copy of the accumulated counts.
func (s *Session) Report() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.report
	r.RunID = s.ID
	r.Failures = append([]FileFailure(nil), s.report.Failures...)
	return r
}
