package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/linkctx"
)

var (
	labelColor = color.New(color.FgCyan)
	titleColor = color.New(color.Bold)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	okColor    = color.New(color.FgGreen)
)

// renderText writes a human-readable view of r: title, summary, tags and
// every derived link form.
func renderText(w io.Writer, r *linkctx.Result) {
	links := linkctx.NewArtifacts(r)

	titleColor.Fprintln(w, r.Title)
	fmt.Fprintln(w, r.Summary)
	fmt.Fprintln(w)

	if tags := hashtags(r.SuggestedTags); tags != "" {
		field(w, "Tags", tags)
	}
	field(w, "Highlight", fmt.Sprintf("%q", r.HighlightPhrase))
	if r.HighlightVerified != nil && !*r.HighlightVerified {
		warnColor.Fprintln(w, "  phrase not found on the page; the deep link may not highlight")
	}
	field(w, "Readable", links.Readable)
	field(w, "Markdown", links.Markdown)
	field(w, "HTML", links.HTML)
	field(w, "Deep link", links.Deep)

	if len(r.Sources) > 0 {
		labelColor.Fprintln(w, "Sources:")
		for _, s := range r.Sources {
			fmt.Fprintf(w, "  - %s <%s>\n", s.Title, s.URI)
		}
	}
}

// renderResult writes r in the named format.
func renderResult(w io.Writer, r *linkctx.Result, format string) error {
	links := linkctx.NewArtifacts(r)
	switch format {
	case "", "text":
		renderText(w, r)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Result *linkctx.Result   `json:"result"`
			Links  linkctx.Artifacts `json:"links"`
		}{r, links})
	case "markdown":
		fmt.Fprint(w, linkctx.FormatMarkdown(r))
	default:
		s, err := links.Get(linkctx.Artifact(format))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
	}
	return nil
}

func field(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "%s: ", label)
	fmt.Fprintln(w, value)
}

func hashtags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		out = append(out, linkctx.Hashtag(t))
	}
	return strings.Join(out, " ")
}

// printError writes the display message of err to w.
func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "error: %s\n", linkctx.DisplayMessage(err))
}
