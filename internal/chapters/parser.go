// Package chapters extracts track segmentation from creator-written
// chapter descriptions and derives validated, bounded segments from it.
package chapters

import (
	"bufio"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Mark is one detected chapter marker: a start offset in seconds paired
// with the trimmed trailing title, in source line order.
type Mark struct {
	Start int
	Title string
	// Line is the 1-based source line the mark was found on.
	Line int
}

// grammar is one timestamp style found in the wild. Creators format
// chapter markers inconsistently, so grammars are tried in priority
// order and the first structural match wins; adding a new style is one
// more entry in the list.
type grammar struct {
	name string
	re   *regexp.Regexp
	// hasHours selects HH:MM:SS vs MM:SS offset conversion.
	hasHours bool
}

//nolint:gochecknoglobals // Fixed grammar table, read-only after init
var grammars = []grammar{
	{
		name:     "bracketed-hhmmss",
		re:       regexp.MustCompile(`^\s*[\[(](\d{1,2}):(\d{2}):(\d{2})[\])]\s*[-–—:.]?\s*(\S.*)$`),
		hasHours: true,
	},
	{
		name: "bracketed-mmss",
		re:   regexp.MustCompile(`^\s*[\[(](\d{1,3}):(\d{2})[\])]\s*[-–—:.]?\s*(\S.*)$`),
	},
	{
		name:     "hhmmss",
		re:       regexp.MustCompile(`^\s*(\d{1,2}):(\d{2}):(\d{2})\s*[-–—:.]?\s*(\S.*)$`),
		hasHours: true,
	},
	{
		name: "mmss",
		re:   regexp.MustCompile(`^\s*(\d{1,3}):(\d{2})\s*[-–—:.]?\s*(\S.*)$`),
	},
}

// ParseDescription scans a free-text video description for chapter
// markers. Each line is tested against the grammar list; a line that
// structurally matches but fails offset conversion is skipped and
// logged, never fatal. Zero detected marks is a valid result: it simply
// means the media item is not chaptered.
func ParseDescription(description string, log *slog.Logger) []Mark {
	var marks []Mark

	scanner := bufio.NewScanner(strings.NewReader(description))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		for _, g := range grammars {
			m := g.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			start, title, err := convertMatch(g, m)
			if err != nil {
				log.Warn("skipping chapter line with unconvertible timestamp",
					"line", lineNum,
					"grammar", g.name,
					"text", strings.TrimSpace(line),
					"error", err,
				)
				break
			}

			marks = append(marks, Mark{Start: start, Title: title, Line: lineNum})
			break
		}
	}

	return marks
}

// convertMatch turns a grammar match into a second offset and title.
func convertMatch(g grammar, m []string) (int, string, error) {
	fields := m[1 : len(m)-1]
	title := strings.TrimSpace(m[len(m)-1])

	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, "", err
		}
		values[i] = v
	}

	if g.hasHours {
		if err := checkRange(values[1], values[2]); err != nil {
			return 0, "", err
		}
		return values[0]*3600 + values[1]*60 + values[2], title, nil
	}

	if values[1] > 59 {
		return 0, "", &offsetError{"seconds", values[1]}
	}
	return values[0]*60 + values[1], title, nil
}

func checkRange(minutes, seconds int) error {
	if minutes > 59 {
		return &offsetError{"minutes", minutes}
	}
	if seconds > 59 {
		return &offsetError{"seconds", seconds}
	}
	return nil
}

type offsetError struct {
	field string
	value int
}

func (e *offsetError) Error() string {
	return e.field + " field out of range: " + strconv.Itoa(e.value)
}
