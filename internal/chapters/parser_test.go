package chapters

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseDescription_PlainMMSS(t *testing.T) {
	description := "00:00 Intro\n03:15 Verse One\n"

	marks := ParseDescription(description, discardLogger())

	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(marks))
	}
	if marks[0].Start != 0 || marks[0].Title != "Intro" {
		t.Errorf("mark 0 = %+v", marks[0])
	}
	if marks[1].Start != 195 || marks[1].Title != "Verse One" {
		t.Errorf("mark 1 = %+v", marks[1])
	}
}

func TestParseDescription_Grammars(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantStart int
		wantTitle string
	}{
		{"hhmmss", "1:02:03 Ζεϊμπέκικο", 3723, "Ζεϊμπέκικο"},
		{"hhmmss dash", "0:03:15 - Τα λαδάδικα", 195, "Τα λαδάδικα"},
		{"mmss", "12:34 Χορευτικό", 754, "Χορευτικό"},
		{"mmss dot", "3:15. Verse One", 195, "Verse One"},
		{"bracketed hhmmss", "[0:03:15] Verse One", 195, "Verse One"},
		{"bracketed mmss", "(03:15) Verse One", 195, "Verse One"},
		{"long minutes", "125:00 Finale", 7500, "Finale"},
		{"leading whitespace", "  03:15 Verse One", 195, "Verse One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marks := ParseDescription(tt.line, discardLogger())
			if len(marks) != 1 {
				t.Fatalf("expected 1 mark for %q, got %d", tt.line, len(marks))
			}
			if marks[0].Start != tt.wantStart {
				t.Errorf("start = %d, want %d", marks[0].Start, tt.wantStart)
			}
			if marks[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", marks[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestParseDescription_SkipsNonMatchingLines(t *testing.T) {
	description := `Μεγάλη συναυλία στο Ηρώδειο
00:00 Intro
Ακολουθεί το δεύτερο μέρος
03:15 Verse One

Εγγραφείτε στο κανάλι`

	marks := ParseDescription(description, discardLogger())

	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(marks))
	}
	if marks[0].Line != 2 || marks[1].Line != 4 {
		t.Errorf("line numbers = %d, %d; want 2, 4", marks[0].Line, marks[1].Line)
	}
}

func TestParseDescription_InvalidOffsetSkippedNotFatal(t *testing.T) {
	// 3:75 structurally matches the MM:SS grammar but 75 is not a
	// valid seconds field; the line is skipped, the rest still parses.
	description := "00:00 Intro\n3:75 Broken\n04:00 Outro\n"

	marks := ParseDescription(description, discardLogger())

	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d: %+v", len(marks), marks)
	}
	if marks[0].Title != "Intro" || marks[1].Title != "Outro" {
		t.Errorf("unexpected marks: %+v", marks)
	}
}

func TestParseDescription_NoChaptersIsValid(t *testing.T) {
	marks := ParseDescription("Απλή περιγραφή χωρίς κεφάλαια.", discardLogger())
	if len(marks) != 0 {
		t.Errorf("expected no marks, got %+v", marks)
	}
}

func TestParseDescription_TimestampWithoutTitleIgnored(t *testing.T) {
	marks := ParseDescription("03:15\n", discardLogger())
	if len(marks) != 0 {
		t.Errorf("expected no marks for a bare timestamp, got %+v", marks)
	}
}
