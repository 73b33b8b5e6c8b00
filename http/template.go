package http

import (
	"html/template"

	"github.com/fwojciec/linkctx"
)

// pageData feeds pageTemplate. Result is nil until an analysis succeeds.
type pageData struct {
	Input  string
	Error  string
	Result *linkctx.Result
	Links  linkctx.Artifacts
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"hashtag":    linkctx.Hashtag,
	"markdown":   linkctx.FormatMarkdown,
	"unverified": func(r *linkctx.Result) bool {
		return r.HighlightVerified != nil && !*r.HighlightVerified
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Link Contextualizer</title>
<style>
body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem}
pre{background:#f5f5f5;padding:.5rem;white-space:pre-wrap;word-break:break-all}
.error{color:#b00020}
.tag{margin-right:.5rem;color:#555}
</style>
</head>
<body>
<h1>Link Contextualizer</h1>
<form method="post" action="/">
<input type="text" name="url" value="{{.Input}}" placeholder="Paste a URL" size="60" autofocus>
<button type="submit">Analyze</button>
</form>
{{with .Error}}<p class="error">{{.}}</p>{{end}}
{{with .Result}}
<section id="result">
<h2>{{.Title}}</h2>
<p>{{.Summary}}</p>
<p>{{range .SuggestedTags}}{{if .}}<span class="tag">{{hashtag .}}</span>{{end}}{{end}}</p>
<h3>Highlight</h3>
<blockquote><a href="{{$.Links.Deep}}">{{.HighlightPhrase}}</a></blockquote>
{{if unverified .}}<p class="error">Phrase not found on the page; the deep link may not highlight.</p>{{end}}
<h3>Readable link</h3>
<pre>{{$.Links.Readable}}</pre>
<h3>Markdown</h3>
<pre>{{$.Links.Markdown}}</pre>
<h3>HTML</h3>
<pre>{{$.Links.HTML}}</pre>
<h3>Deep link</h3>
<pre>{{$.Links.Deep}}</pre>
<h3>Note</h3>
<pre>{{markdown .}}</pre>
{{with .Sources}}
<h3>Sources</h3>
<ul>{{range .}}<li><a href="{{.URI}}" rel="noopener noreferrer">{{.Title}}</a></li>{{end}}</ul>
{{end}}
</section>
{{end}}
</body>
</html>
`))
