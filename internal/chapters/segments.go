package chapters

import (
	"github.com/anagnostou/laterna/internal/errors"
)

// Segment is one bounded, validated chapter segment.
//
// Segments are contiguous and non-overlapping: each End is exclusive and
// equals the next segment's Start, and the final End equals the total
// media duration.
type Segment struct {
	// Index is 1-based and doubles as the track number when the
	// segment is split into its own file.
	Index int
	// Start and End are second offsets into the parent media item.
	Start int
	End   int
	Title string
	// Year and Album are optionally inherited from the parent media
	// item by the caller.
	Year  string
	Album string
}

// BuildSegments converts parsed marks into bounded segments. Each mark's
// start is paired with the next mark's start, or with totalDuration for
// the last mark.
//
// Marks that are out of order, duplicated, negative, or beyond the total
// duration fail with a validation error rather than silently corrupting
// downstream splitting. An empty mark list yields an empty, valid result.
func BuildSegments(marks []Mark, totalDuration int) ([]Segment, error) {
	if len(marks) == 0 {
		return nil, nil
	}

	if totalDuration <= 0 {
		return nil, errors.Validationf("total duration %d is not positive", totalDuration)
	}

	segments := make([]Segment, len(marks))
	for i, mark := range marks {
		if mark.Start < 0 {
			return nil, errors.Validationf("chapter %d has negative start %d", i+1, mark.Start)
		}
		if i > 0 && mark.Start <= marks[i-1].Start {
			return nil, errors.Validationf(
				"chapter starts not strictly increasing: %d then %d", marks[i-1].Start, mark.Start)
		}
		if mark.Start >= totalDuration {
			return nil, errors.Validationf(
				"chapter %d starts at %d, beyond total duration %d", i+1, mark.Start, totalDuration)
		}

		end := totalDuration
		if i < len(marks)-1 {
			end = marks[i+1].Start
		}

		segments[i] = Segment{
			Index: i + 1,
			Start: mark.Start,
			End:   end,
			Title: mark.Title,
		}
	}

	return segments, nil
}
