package main

import (
	"github.com/fwojciec/linkctx"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	if linkctx.NormalizeURL(c.URL) == "" {
		return linkctx.Errorf(linkctx.EINVALID, "URL required")
	}

	// Unknown forms and a missing clipboard fail before the API call.
	if c.Copy != "" {
		if _, err := (linkctx.Artifacts{}).Get(linkctx.Artifact(c.Copy)); err != nil {
			return err
		}
		if !deps.Clipboard.Available() {
			return linkctx.Errorf(linkctx.ECONFIG, "No clipboard utility available. Install xclip, xsel or wl-clipboard, or drop --copy.")
		}
	}

	result, err := deps.Contextualizer.Contextualize(deps.Ctx, deps.Config, c.URL)
	if err != nil {
		return err
	}

	if err := renderResult(deps.Stdout, result, c.Format); err != nil {
		return err
	}

	if c.Copy != "" {
		text, _ := linkctx.NewArtifacts(result).Get(linkctx.Artifact(c.Copy))
		if err := deps.Clipboard.WriteText(text); err != nil {
			return err
		}
		okColor.Fprintf(deps.Stderr, "Copied %s link.\n", c.Copy)
	}
	return nil
}
