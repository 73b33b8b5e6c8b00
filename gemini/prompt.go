package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/linkctx"
)

// sectionPlaceholders describes what the model writes under each marker.
var sectionPlaceholders = map[linkctx.Section]string{
	linkctx.SectionTitle:            "(The Page Title)",
	linkctx.SectionHighlightPhrase:  "(The verbatim text fragment)",
	linkctx.SectionDescriptiveLabel: "(The English Label)",
	linkctx.SectionSummary:          "(The English Context Summary)",
	linkctx.SectionTags:             "(Tag1, Tag2, Tag3)",
}

// BuildPrompt builds the analysis prompt for url. When page is non-nil its
// Markdown content is included so the model can quote from it directly.
func BuildPrompt(url string, page *linkctx.Page) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze the following URL: %s\n\n", url)
	sb.WriteString("Task: Create a \"Contextualized Smart Link\" that explains the content clearly in English.\n\n")

	if page != nil && page.Content != "" {
		sb.WriteString("1. **Analyze**: Read the page content provided below.\n")
	} else {
		sb.WriteString("1. **Analyze**: Use Google Search to read the current content of the page.\n")
	}
	sb.WriteString("2. **Highlight**: Extract a UNIQUE, VERBATIM short phrase (5-10 words) from the main body text. It must be an exact match to create a working Text Fragment link. Do not change a single character.\n")
	sb.WriteString("3. **Label**: Create a short, punchy, descriptive English title (3-6 words) that summarizes the specific topic. This will be converted into a URL slug (e.g., \"React Hooks Introduction\" -> \"#react-hooks-introduction\").\n")
	sb.WriteString("4. **Context**: Write a clear, single-sentence summary in English explaining exactly what this link is about.\n")
	sb.WriteString("5. **Tags**: 3 relevant English keywords.\n\n")

	sb.WriteString("Format your response strictly as follows:\n")
	for _, s := range linkctx.Sections {
		sb.WriteString(linkctx.Marker(s))
		sb.WriteString("\n")
		sb.WriteString(sectionPlaceholders[s])
		sb.WriteString("\n")
	}

	if page != nil && page.Content != "" {
		sb.WriteString("\n<page>\n")
		if page.Title != "" {
			fmt.Fprintf(&sb, "<title>%s</title>\n", page.Title)
		}
		fmt.Fprintf(&sb, "<content>\n%s\n</content>\n", page.Content)
		sb.WriteString("</page>\n")
	}

	return sb.String()
}
