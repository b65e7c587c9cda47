package simplifiers

import (
	"strings"
	"testing"
)

func TestCountSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty", "", 0},
		{"single", "This is a sentence.", 1},
		{"mixed terminators", "First one. Second one! Third one?", 3},
		{"no terminator", "This is a sentence without a terminator", 1},
		{"trailing fragment", "First sentence. Then a fragment", 2},
		{"abbreviation", "Dr. Smith arrived. He sat down.", 2},
		{"repeated punctuation", "Really?! Yes...", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountSentences(tt.text); got != tt.expected {
				t.Errorf("CountSentences(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("  one two\n\tthree  "); got != 3 {
		t.Errorf("CountWords() = %d, want 3", got)
	}
	if got := CountWords(""); got != 0 {
		t.Errorf("CountWords(\"\") = %d, want 0", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{WordsPerMinute, 1},
		{WordsPerMinute + 1, 2},
		{WordsPerMinute * 3, 3},
	}

	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := ReadingMinutes(text); got != tt.expected {
			t.Errorf("ReadingMinutes(%d words) = %d, want %d", tt.words, got, tt.expected)
		}
	}
}
