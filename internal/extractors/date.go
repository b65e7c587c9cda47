package extractors

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// NormalizeDate rewrites a parseable date as RFC 3339, reading zone-less
// values as UTC. Values that cannot be parsed are returned trimmed.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.Format(time.RFC3339)
}
