package linkctx

import "strings"

// Section names one boundary-tagged part of a model response.
type Section string

// Section boundary tokens.
const (
	SectionTitle            Section = "TITLE"
	SectionHighlightPhrase  Section = "HIGHLIGHT_PHRASE"
	SectionDescriptiveLabel Section = "DESCRIPTIVE_LABEL"
	SectionSummary          Section = "SUMMARY"
	SectionTags             Section = "TAGS"
)

// Sections lists the response sections in the order the model must emit
// them. Prompt construction and parsing both derive from this list.
var Sections = [...]Section{
	SectionTitle,
	SectionHighlightPhrase,
	SectionDescriptiveLabel,
	SectionSummary,
	SectionTags,
}

// Marker returns the literal boundary written before a section's content.
func Marker(s Section) string {
	return "---" + string(s) + "---"
}

// GroundingChunk is one entry of the grounding metadata returned alongside
// generated text. Web is nil when the chunk does not reference a web page.
type GroundingChunk struct {
	Web *WebReference
}

// WebReference identifies a retrieved web page.
type WebReference struct {
	Title string
	URI   string
}

// ParseResponse builds a Result from a sectioned model response.
// Sources are not part of the text; see ParseSources.
//
// The caller must not pass empty text: an empty response is reported as
// ENOCONTENT before parsing.
func ParseResponse(originalURL, text string) *Result {
	return &Result{
		OriginalURL:      originalURL,
		Title:            orDefault(extractSection(text, SectionTitle), FallbackTitle),
		HighlightPhrase:  stripQuotes(extractSection(text, SectionHighlightPhrase)),
		DescriptiveLabel: orDefault(extractSection(text, SectionDescriptiveLabel), FallbackDescriptiveLabel),
		Summary:          orDefault(extractSection(text, SectionSummary), FallbackSummary),
		SuggestedTags:    extractTags(text),
	}
}

// ParseSources keeps the grounding chunks that reference a web page with
// both a title and a URI.
func ParseSources(chunks []GroundingChunk) []Source {
	sources := make([]Source, 0, len(chunks))
	for _, c := range chunks {
		if c.Web == nil || c.Web.Title == "" || c.Web.URI == "" {
			continue
		}
		sources = append(sources, Source{Title: c.Web.Title, URI: c.Web.URI})
	}
	return sources
}

// extractSection returns the trimmed text between the section's marker and
// the marker of the section that follows it. The last section runs to the
// end of the text. Returns "" when either marker is missing.
func extractSection(text string, s Section) string {
	i := sectionIndex(s)
	if i < 0 {
		return ""
	}

	start := Marker(s)
	idx := strings.Index(text, start)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(start):]

	if i == len(Sections)-1 {
		return strings.TrimSpace(rest)
	}

	end := strings.Index(rest, Marker(Sections[i+1]))
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

func extractTags(text string) []string {
	marker := Marker(SectionTags)
	idx := strings.Index(text, marker)
	if idx < 0 {
		return []string{}
	}

	raw := text[idx+len(marker):]
	// A blank section is no tags at all, not a single empty tag, even
	// though a plain comma split of "" would produce one.
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}
	return tags
}

func sectionIndex(s Section) int {
	for i, v := range Sections {
		if v == s {
			return i
		}
	}
	return -1
}

// stripQuotes removes quote characters, which break percent-encoding and
// text-fragment matching.
func stripQuotes(s string) string {
	return strings.NewReplacer(`"`, "", "'", "").Replace(s)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
