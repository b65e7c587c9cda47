// Package savekit extracts and classifies saved web pages for a read-it-later
// product. Given a page's HTML it returns cleaned structured text, metadata,
// and product and book signals, and decides what kind of save the page is.
//
// Usage:
//
//	import "github.com/mrjoshuak/savekit"
//
//	// Create extractor
//	ext := savekit.New(savekit.WithTimeout(10 * time.Second))
//
//	// Extract from HTML
//	article, err := ext.ExtractFromHTML(ctx, htmlString, "https://example.com/post")
//
//	// Build and classify a record
//	rec := savekit.BuildRecord(savekit.SaveRecord{URL: "https://example.com/post"}, article)
//	fmt.Println(rec.SaveType)
package savekit
