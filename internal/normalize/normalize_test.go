package normalize

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Greek with accents
		{"Χάρις Αλεξίου", "χαρις αλεξιου"},
		{"ΧΑΡΗΣ ΑΛΕΞΙΟΥ", "χαρης αλεξιου"},
		{"ΠΑΡΙΟΣ", "παριος"},
		{"Διονύσης Σαββόπουλος", "διονυσης σαββοπουλος"},
		// Greek dialytika and double accents
		{"Μαΐου", "μαιου"},
		{"ΰ", "υ"},
		// Latin with diacritics
		{"café", "cafe"},
		{"Beyoncé", "beyonce"},
		{"Dvořák", "dvorak"},
		// Mixed scripts stay mixed (no transliteration)
		{"Nana Μούσχουρη", "nana μουσχουρη"},
		// Base characters and their order preserved
		{"abc", "abc"},
		{"", ""},
		// Null bytes dropped
		{"abc\x00def", "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := Fold(tt.input)
			if err != nil {
				t.Fatalf("Fold(%q) returned error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFold_Idempotent(t *testing.T) {
	inputs := []string{
		"Χάρις Αλεξίου",
		"ΓΙΩΡΓΟΣ ΝΤΑΛΑΡΑΣ",
		"café au lait",
		"already plain",
		"Μίκης Θεοδωράκης - Συλλογή",
	}

	for _, input := range inputs {
		once, err := Fold(input)
		if err != nil {
			t.Fatalf("Fold(%q) returned error: %v", input, err)
		}
		twice, err := Fold(once)
		if err != nil {
			t.Fatalf("Fold(Fold(%q)) returned error: %v", input, err)
		}
		if once != twice {
			t.Errorf("Fold not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestFold_InvalidUTF8(t *testing.T) {
	_, err := Fold(string([]byte{0xff, 0xfe, 0xfd}))
	if err == nil {
		t.Fatal("expected error for invalid UTF-8 input")
	}
}

func TestMustFold_PanicsOnInvalidInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustFold(string([]byte{0xff}))
}
