package simplifiers

import "strings"

// BoilerplatePhrases are lowercase marketing and navigation phrases. A text
// fragment containing any of them is treated as page chrome rather than content.
var BoilerplatePhrases = []string{
	"subscribe",
	"newsletter",
	"sign up",
	"follow us",
	"advertisement",
	"sponsored",
	"cookie",
	"privacy policy",
	"terms of use",
	"all rights reserved",
	"read more",
	"share this",
	"related articles",
	"recommended for you",
	"click here",
}

// IsBoilerplate reports whether text contains one of BoilerplatePhrases,
// ignoring case. Empty text is not boilerplate.
func IsBoilerplate(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range BoilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
