package linkctx

// Fallback values for fields the model did not return.
const (
	FallbackTitle            = "External Link"
	FallbackDescriptiveLabel = "Visit Link"
	FallbackSummary          = "Content details unavailable."
)

// Result is the contextualized form of a single URL.
// It is created once per successful analysis and never updated in place.
type Result struct {
	OriginalURL      string   `json:"originalUrl"`
	Title            string   `json:"title"`
	HighlightPhrase  string   `json:"highlightPhrase"`
	DescriptiveLabel string   `json:"descriptiveLabel"`
	Summary          string   `json:"summary"`
	SuggestedTags    []string `json:"suggestedTags"`
	Sources          []Source `json:"sources,omitempty"`

	// HighlightVerified reports whether HighlightPhrase occurs in the page
	// text. Nil when the page was not read locally.
	HighlightVerified *bool `json:"highlightVerified,omitempty"`
}

// Source is a web page the model used while analyzing the URL.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
