package simplifiers

import (
	"math"
	"strings"
	"unicode"
)

// WordsPerMinute is the reading speed ReadingMinutes assumes.
const WordsPerMinute = 230

// CountWords counts the whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSentences counts runs of letters or digits closed by terminal
// punctuation. A trailing run without punctuation counts as a sentence.
func CountSentences(text string) int {
	for _, abbr := range []string{"Dr.", "Mr.", "Mrs.", "Ms.", "Prof.", "St.", "Jr.", "Sr."} {
		text = strings.ReplaceAll(text, abbr, strings.TrimSuffix(abbr, "."))
	}

	count := 0
	inSentence := false
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			inSentence = true
		case inSentence && (r == '.' || r == '!' || r == '?'):
			count++
			inSentence = false
		}
	}
	if inSentence {
		count++
	}
	return count
}

// ReadingMinutes estimates reading time, rounded up. Empty text reads in
// zero minutes.
func ReadingMinutes(text string) int {
	words := CountWords(text)
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}
