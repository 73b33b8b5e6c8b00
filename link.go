package linkctx

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeURL trims raw user input and prefixes "https://" when it does not
// already start with "http". It does not validate the URL.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http") {
		u = "https://" + u
	}
	return u
}

// Slug converts a label into a lowercase, hyphen-separated fragment.
// Characters other than a-z, 0-9, whitespace and '-' are dropped.
func Slug(label string) string {
	lower := strings.ToLower(label)

	var sb strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), "-")
}

// ReadableLink returns the original URL with the slugged label as fragment.
// An empty label yields the URL followed by a bare "#".
func ReadableLink(r *Result) string {
	if r == nil {
		return ""
	}
	return r.OriginalURL + "#" + Slug(r.DescriptiveLabel)
}

// DeepLink returns the original URL with a text fragment pointing at the
// highlight phrase. Without a phrase the original URL is returned unchanged.
func DeepLink(r *Result) string {
	if r == nil {
		return ""
	}
	if r.HighlightPhrase == "" {
		return r.OriginalURL
	}
	return r.OriginalURL + "#:~:text=" + EncodeURIComponent(r.HighlightPhrase)
}

// MarkdownLink returns a Markdown link to the readable link.
func MarkdownLink(r *Result) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("[%s](%s)", r.DescriptiveLabel, ReadableLink(r))
}

// HTMLLink returns an anchor element pointing at the readable link.
// Neither the href nor the label is HTML-escaped: the snippet is meant for
// pasting as-is, so a '"' in the URL or a '<' in the label passes through
// and can break the markup. Callers embedding it in a page must escape it
// themselves (html/template does).
func HTMLLink(r *Result) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, ReadableLink(r), r.DescriptiveLabel)
}

// Artifacts holds every link form derived from a Result.
type Artifacts struct {
	Readable string `json:"readable"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Deep     string `json:"deep"`
}

// NewArtifacts derives all link forms from r.
func NewArtifacts(r *Result) Artifacts {
	return Artifacts{
		Readable: ReadableLink(r),
		Markdown: MarkdownLink(r),
		HTML:     HTMLLink(r),
		Deep:     DeepLink(r),
	}
}

// Artifact names one derived link form.
type Artifact string

// Artifact names accepted by Artifacts.Get.
const (
	ArtifactReadable Artifact = "readable"
	ArtifactMarkdown Artifact = "markdown"
	ArtifactHTML     Artifact = "html"
	ArtifactDeep     Artifact = "deep"
)

// Get returns the named artifact.
// Returns EINVALID for an unknown name.
func (a Artifacts) Get(name Artifact) (string, error) {
	switch name {
	case ArtifactReadable:
		return a.Readable, nil
	case ArtifactMarkdown:
		return a.Markdown, nil
	case ArtifactHTML:
		return a.HTML, nil
	case ArtifactDeep:
		return a.Deep, nil
	}
	return "", Errorf(EINVALID, "unknown artifact %q (want readable, markdown, html or deep)", name)
}

// uriUnreserved are the characters encodeURIComponent leaves untouched
// besides ASCII letters and digits.
const uriUnreserved = "-_.!~*'()"

// EncodeURIComponent percent-encodes s the way browsers encode URI
// components: every byte outside the unreserved set becomes %XX.
// url.QueryEscape differs (it writes '+' for spaces and escapes '!*()').
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIIAlnum(c) || strings.IndexByte(uriUnreserved, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func isASCIIAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
