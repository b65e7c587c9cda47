package types

// SaveType tags a saved item for rendering and filtering.
type SaveType string

// Save types, in classification precedence order.
const (
	SaveTypeBook      SaveType = "book"
	SaveTypeProduct   SaveType = "product"
	SaveTypeHighlight SaveType = "highlight"
	SaveTypeImage     SaveType = "image"
	SaveTypeVoice     SaveType = "voice"
	SaveTypeNote      SaveType = "note"
	SaveTypeMusic     SaveType = "music"
	SaveTypeVideo     SaveType = "video"
	SaveTypeLink      SaveType = "link"
	SaveTypeArticle   SaveType = "article"
)

// Sources a save can be captured from.
const (
	SourceExtension = "extension"
	SourceWeb       = "web"
	SourceUpload    = "upload"
	SourceCLI       = "cli"
)

// Site names that mark non-page saves.
const (
	SiteNameVoiceMemo = "Voice Memo"
	SiteNameNote      = "Note"
)

// SaveRecord is the persisted unit for one captured item.
// Field tags follow the storage schema.
type SaveRecord struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	UserID      string   `json:"user_id" yaml:"user_id"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Title       string   `json:"title" yaml:"title"`
	Content     string   `json:"content,omitempty" yaml:"content,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName    string   `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	PublishedAt string   `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	AudioURL    string   `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`
	Source      string   `json:"source" yaml:"source"`
	Highlight   string   `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	FolderID    string   `json:"folder_id,omitempty" yaml:"folder_id,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	SaveType    SaveType `json:"save_type,omitempty" yaml:"save_type,omitempty"`

	IsProduct           bool    `json:"is_product" yaml:"is_product"`
	ProductPrice        *string `json:"product_price,omitempty" yaml:"product_price,omitempty"`
	ProductCurrency     string  `json:"product_currency,omitempty" yaml:"product_currency,omitempty"`
	ProductAvailability *string `json:"product_availability,omitempty" yaml:"product_availability,omitempty"`
	ProductDescription  *string `json:"product_description,omitempty" yaml:"product_description,omitempty"`

	IsBook              bool    `json:"is_book" yaml:"is_book"`
	BookISBN            *string `json:"book_isbn,omitempty" yaml:"book_isbn,omitempty"`
	BookAuthor          *string `json:"book_author,omitempty" yaml:"book_author,omitempty"`
	BookPublisher       *string `json:"book_publisher,omitempty" yaml:"book_publisher,omitempty"`
	BookPublicationDate *string `json:"book_publication_date,omitempty" yaml:"book_publication_date,omitempty"`
	BookPageCount       *int    `json:"book_page_count,omitempty" yaml:"book_page_count,omitempty"`

	IsArchived bool `json:"is_archived" yaml:"is_archived"`
	IsFavorite bool `json:"is_favorite" yaml:"is_favorite"`
	IsPinned   bool `json:"is_pinned" yaml:"is_pinned"`
}

// MergeArticle folds an extraction result into rec. Fields already set on
// rec (for example a title supplied by the caller) are kept.
func MergeArticle(rec *SaveRecord, a *ExtractedArticle) {
	if rec == nil || a == nil {
		return
	}
	if rec.Title == "" {
		rec.Title = a.Title
	}
	if rec.Content == "" {
		rec.Content = a.Content
	}
	if rec.Excerpt == "" {
		rec.Excerpt = a.Excerpt
	}
	if rec.SiteName == "" {
		rec.SiteName = Deref(a.SiteName)
	}
	if rec.Author == "" {
		rec.Author = Deref(a.Author)
	}
	if rec.PublishedAt == "" {
		rec.PublishedAt = Deref(a.PublishedTime)
	}
	if rec.ImageURL == "" {
		rec.ImageURL = Deref(a.ImageURL)
	}

	if a.Product.IsProduct {
		rec.IsProduct = true
		rec.ProductPrice = a.Product.Price
		rec.ProductCurrency = a.Product.Currency
		rec.ProductAvailability = a.Product.Availability
		rec.ProductDescription = a.Product.Description
	}
	if a.Book.IsBook {
		rec.IsBook = true
		rec.BookISBN = a.Book.ISBN
		rec.BookAuthor = a.Book.Author
		rec.BookPublisher = a.Book.Publisher
		rec.BookPublicationDate = a.Book.PublicationDate
		rec.BookPageCount = a.Book.PageCount
	}
}
