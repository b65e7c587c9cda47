package savekit_test

import (
	"context"
	"fmt"
	"time"

	"github.com/mrjoshuak/savekit"
)

const exampleHTML = `<html><head><title>Article Title</title></head><body><header><nav><ul><li><a href="#">Home</a></li><li><a href="#">About</a></li></ul></nav></header><main><article><h1>Article Title</h1><p>This is a test paragraph with enough text to be considered relevant content by the Readability algorithm. We need to ensure that this paragraph has sufficient length to be scored highly by the content extraction algorithm. The algorithm looks for blocks of text that appear to be the main content of the page, as opposed to navigation, headers, footers, or other ancillary content.</p><p>Adding another paragraph increases the content score for this article element, making it more likely to be identified as the main content of the page. The Readability algorithm is designed to extract the primary content from a webpage, ignoring elements that are likely to be navigation, ads, or other non-content features.</p></article></main><footer><p>Copyright 2025</p></footer></body></html>`

func ExampleNew() {
	// Create a new extractor with default options
	ext := savekit.New()

	// Extract from an HTML string
	article, err := ext.ExtractFromHTML(context.Background(), exampleHTML, "https://example.com/post")
	if err != nil {
		fmt.Printf("Error extracting article: %v\n", err)
		return
	}

	fmt.Printf("Title: %s\n", article.Title)
	fmt.Printf("Tier: %s\n", article.Tier)
	// Output:
	// Title: Article Title
	// Tier: readability
}

func ExampleWithTimeout() {
	ext := savekit.New(
		savekit.WithTimeout(time.Second*60),
		savekit.WithEngine("shiori"),
	)

	article, err := ext.ExtractFromHTML(context.Background(), exampleHTML, "")
	if err != nil {
		fmt.Printf("Error extracting article: %v\n", err)
		return
	}

	fmt.Printf("Title: %s\n", article.Title)
	// Output: Title: Article Title
}

func ExampleBuildRecord() {
	html := `<html><head><title>Blue Widget</title>
<script type="application/ld+json">{"@type":"Product","offers":{"lowPrice":"45.00"}}</script>
</head><body><p>The blue widget.</p></body></html>`

	article, err := savekit.New().ExtractFromHTML(context.Background(), html, "https://shop.example/widget")
	if err != nil {
		fmt.Printf("Error extracting article: %v\n", err)
		return
	}

	rec := savekit.BuildRecord(savekit.SaveRecord{URL: "https://shop.example/widget"}, article)
	fmt.Println(rec.SaveType, *rec.ProductPrice, rec.ProductCurrency)
	// Output: product 45.00 USD
}

func ExampleClassify() {
	rec := &savekit.SaveRecord{
		URL:    "https://www.youtube.com/watch?v=abc",
		IsBook: true,
	}
	fmt.Println(savekit.Classify(rec))
	// Output: book
}
