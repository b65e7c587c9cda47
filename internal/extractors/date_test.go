package extractors

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		dateStr  string
		expected string
	}{
		{"RFC3339", "2023-03-27T15:04:05Z", "2023-03-27T15:04:05Z"},
		{"ISO8601 with timezone offset", "2023-03-27T15:04:05+02:00", "2023-03-27T15:04:05+02:00"},
		{"ISO8601 without timezone", "2023-03-27T15:04:05", "2023-03-27T15:04:05Z"},
		{"ISO8601 date only", "2023-03-27", "2023-03-27T00:00:00Z"},
		{"Surrounding space", "  2023-03-27  ", "2023-03-27T00:00:00Z"},
		{"Invalid format kept", "not a date", "not a date"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.dateStr); got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.dateStr, got, tt.expected)
			}
		})
	}
}
