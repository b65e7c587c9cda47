package simplifiers

import "testing"

func TestIsBoilerplate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"plain prose", "The committee met on Tuesday to discuss the budget.", false},
		{"newsletter prompt", "Get our weekly Newsletter in your inbox", true},
		{"mixed case subscribe", "SUBSCRIBE now for full access", true},
		{"cookie banner", "We use cookies to improve your experience.", true},
		{"read more link", "Read more about this story", true},
		{"follow prompt", "Follow us on social media", true},
		{"privacy footer", "See our Privacy Policy for details.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBoilerplate(tt.text); got != tt.want {
				t.Errorf("IsBoilerplate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsBoilerplateOnTruncatedBody(t *testing.T) {
	body := TruncateWords("", 50000)
	if IsBoilerplate(body) {
		t.Errorf("IsBoilerplate(%q) = true, want false", body)
	}
}
