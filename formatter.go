package linkctx

import (
	"strings"
)

// Hashtag formats a suggested tag for display: lowercase with whitespace
// runs replaced by '-', prefixed with '#'.
func Hashtag(tag string) string {
	return "#" + strings.Join(strings.Fields(strings.ToLower(tag)), "-")
}

// FormatMarkdown renders a result as a Markdown snippet suitable for notes:
// the labelled link, the summary, tags and sources.
func FormatMarkdown(r *Result) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(MarkdownLink(r))
	sb.WriteString("\n\n")
	sb.WriteString(r.Summary)
	sb.WriteString("\n")

	if len(r.SuggestedTags) > 0 {
		tags := make([]string, 0, len(r.SuggestedTags))
		for _, t := range r.SuggestedTags {
			if t == "" {
				continue
			}
			tags = append(tags, Hashtag(t))
		}
		if len(tags) > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Join(tags, " "))
			sb.WriteString("\n")
		}
	}

	if r.HighlightPhrase != "" {
		sb.WriteString("\n> [")
		sb.WriteString(r.HighlightPhrase)
		sb.WriteString("](")
		sb.WriteString(DeepLink(r))
		sb.WriteString(")\n")
	}

	if len(r.Sources) > 0 {
		sb.WriteString("\nSources:\n")
		for _, s := range r.Sources {
			sb.WriteString("- [")
			sb.WriteString(s.Title)
			sb.WriteString("](")
			sb.WriteString(s.URI)
			sb.WriteString(")\n")
		}
	}

	return sb.String()
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
