package simplifiers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	retainedChars   = map[rune]bool{
		'\t': true,
		'\n': true,
		'\r': true,
		'\f': true,
	}
)

// Ellipsis is appended to text shortened by TruncateWords.
const Ellipsis = "..."

// NormalizeUnicode normalizes text to NFKC form for consistent character representation
func NormalizeUnicode(text string) string {
	return norm.NFKC.String(text)
}

// NormalizeWhitespace replaces runs of whitespace with a single space and trims
func NormalizeWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// StripControlChars removes Unicode control characters while retaining specific whitespace chars
func StripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if !unicode.IsControl(r) || retainedChars[r] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText strips control characters, applies NFKC and collapses whitespace.
// All text read from the DOM goes through it before length checks.
func NormalizeText(text string) string {
	text = StripControlChars(text)
	text = NormalizeUnicode(text)
	text = NormalizeWhitespace(text)
	return text
}

// RuneLen returns the number of characters in text.
func RuneLen(text string) int {
	return utf8.RuneCountInString(text)
}

// Head returns the first max characters of text without splitting a rune.
func Head(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if RuneLen(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

// TruncateWords shortens text to at most max characters including the
// trailing ellipsis. The cut falls on the last whole word when the head
// contains a space; a single overlong word is cut mid-word.
func TruncateWords(text string, max int) string {
	if RuneLen(text) <= max {
		return text
	}
	limit := max - RuneLen(Ellipsis)
	if limit <= 0 {
		return Head(Ellipsis, max)
	}
	head := Head(text, limit)
	if i := strings.LastIndexAny(head, " \n\t"); i > 0 {
		head = head[:i]
	}
	return strings.TrimRight(head, " \n\t,;:.-") + Ellipsis
}
