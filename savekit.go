package savekit

import (
	"time"

	"github.com/mrjoshuak/savekit/classify"
	"github.com/mrjoshuak/savekit/extractor"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
)

// Extractor defines the interface for article extraction.
type Extractor = extractor.Extractor

// Option represents a function that modifies the extractor settings.
type Option = extractor.Option

// New creates a new Extractor with the provided options.
func New(opts ...Option) Extractor {
	return extractor.New(opts...)
}

// WithEngine selects the readability engine: "native" (default) or "shiori".
func WithEngine(name string) Option {
	return extractor.WithEngine(name)
}

// WithCharThreshold sets the minimum article length the readability engine
// aims for before relaxing its cleanup.
func WithCharThreshold(n int) Option {
	return extractor.WithCharThreshold(n)
}

// WithClassesToPreserve sets the CSS classes kept during readability cleanup.
func WithClassesToPreserve(classes ...string) Option {
	return extractor.WithClassesToPreserve(classes...)
}

// WithMaxBodyChars sets the truncation limit of the last resort tier.
func WithMaxBodyChars(n int) Option {
	return extractor.WithMaxBodyChars(n)
}

// WithTimeout sets the timeout duration for extraction.
// This prevents extraction from hanging indefinitely on problematic documents.
func WithTimeout(timeout time.Duration) Option {
	return extractor.WithTimeout(timeout)
}

// WithOptions replaces all extraction options at once.
func WithOptions(opts ExtractionOptions) Option {
	return extractor.WithOptions(opts)
}

// WithLogger sets the logger used by the extractor.
func WithLogger(log logrus.FieldLogger) Option {
	return extractor.WithLogger(log)
}

// Classify returns the save type of rec.
func Classify(rec *SaveRecord) SaveType {
	return classify.Classify(rec)
}

// BuildRecord merges article into rec and sets its save type. Fields already
// set on rec win over extracted ones.
func BuildRecord(rec SaveRecord, article *ExtractedArticle) SaveRecord {
	types.MergeArticle(&rec, article)
	rec.SaveType = classify.Classify(&rec)
	return rec
}
