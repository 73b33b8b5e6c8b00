package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies the site generator that produced a page.
type Framework string

// Known frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// signature describes how to recognize a framework and where it keeps the
// article body.
type signature struct {
	framework Framework
	markers   []string
	content   []string
}

// signatures are checked in order. VitePress comes before VuePress because
// VitePress pages carry some VuePress markers too.
var signatures = []signature{
	{
		framework: FrameworkDocusaurus,
		markers:   []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", "[data-rh][data-theme]"},
		content:   []string{".theme-doc-markdown", "article"},
	},
	{
		framework: FrameworkMkDocs,
		markers:   []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"},
		content:   []string{".md-content__inner", ".md-content"},
	},
	{
		framework: FrameworkSphinx,
		markers:   []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"},
		content:   []string{"[role=main]", ".body", ".document"},
	},
	{
		framework: FrameworkVitePress,
		markers:   []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"},
		content:   []string{".vp-doc", ".VPDoc"},
	},
	{
		framework: FrameworkVuePress,
		markers:   []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"},
		content:   []string{".theme-default-content"},
	},
	{
		framework: FrameworkGitBook,
		markers:   []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"},
		content:   []string{"main"},
	},
	{
		framework: FrameworkNextra,
		markers:   []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"},
		content:   []string{"article", "main"},
	},
}

// Detect identifies the framework that generated doc from its meta generator
// tag, then from framework-specific classes and attributes. It must run
// before navigation is stripped, since most markers live there.
func Detect(doc *goquery.Document) Framework {
	if f := fromGenerator(doc); f != FrameworkUnknown {
		return f
	}
	for _, sig := range signatures {
		for _, m := range sig.markers {
			if doc.Find(m).Length() > 0 {
				return sig.framework
			}
		}
	}
	if hasGitBookClasses(doc) {
		return FrameworkGitBook
	}
	return FrameworkUnknown
}

// ContentSelectors returns the selectors that hold the article body for f,
// most specific first. Unknown frameworks have none.
func ContentSelectors(f Framework) []string {
	for _, sig := range signatures {
		if sig.framework == f {
			return sig.content
		}
	}
	return nil
}

func fromGenerator(doc *goquery.Document) Framework {
	var generator string
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok {
			generator = strings.ToLower(v)
		}
	})
	if generator == "" {
		return FrameworkUnknown
	}

	for _, f := range []Framework{
		FrameworkSphinx, FrameworkGitBook, FrameworkDocusaurus, FrameworkMkDocs,
		FrameworkVitePress, FrameworkVuePress, FrameworkNextra,
	} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return FrameworkUnknown
}

// hasGitBookClasses reports whether the html element carries at least two of
// GitBook's theme classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").First().Attr("class")
	if class == "" {
		return false
	}
	var n int
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			n++
		}
	}
	return n >= 2
}
