package savekit

import (
	"github.com/mrjoshuak/savekit/types"
)

// ExtractedArticle is the result of a single extraction call.
type ExtractedArticle = types.ExtractedArticle

// ProductData holds the product signals detected on a page.
type ProductData = types.ProductData

// BookData holds the book signals detected on a page.
type BookData = types.BookData

// SaveRecord is the persisted unit for one captured item.
type SaveRecord = types.SaveRecord

// SaveType tags a saved item for rendering and filtering.
type SaveType = types.SaveType

// ExtractionOptions configures the extraction pipeline.
type ExtractionOptions = types.ExtractionOptions

// DefaultOptions returns the default extraction options.
func DefaultOptions() ExtractionOptions {
	return types.DefaultOptions()
}

// BuildInfo contains version and build information for the SaveKit library.
type BuildInfo = types.BuildInfo

// Version information for the SaveKit library.
const (
	Version = types.Version
	Name    = types.Name
)

// GetBuildInfo returns the current version information for the SaveKit library.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}
