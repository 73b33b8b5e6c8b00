package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/linkctx"
)

const interactiveHelp = `Enter a URL to analyze it.
Commands:
  copy <readable|markdown|html|deep>  copy a link form of the current result
  links                               list link forms and their copied state
  state                               show the session state
  help                                show this help
  quit                                leave
`

// linkForms lists the copyable artifacts in display order.
var linkForms = []linkctx.Artifact{
	linkctx.ArtifactReadable,
	linkctx.ArtifactMarkdown,
	linkctx.ArtifactHTML,
	linkctx.ArtifactDeep,
}

// Run executes the interactive command. Each line is either a command or a
// URL submitted to the session; a failed analysis is shown and the session
// continues.
func (c *InteractiveCmd) Run(deps *Dependencies) error {
	session := linkctx.NewSession(deps.Contextualizer, deps.Config)

	indicators := make(map[linkctx.Artifact]*linkctx.CopyIndicator, len(linkForms))
	for _, form := range linkForms {
		indicators[form] = linkctx.NewCopyIndicator(deps.Clipboard, linkctx.DefaultCopyResetDelay)
	}
	defer func() {
		for _, ind := range indicators {
			ind.Stop()
		}
	}()

	fmt.Fprint(deps.Stdout, interactiveHelp)
	if !deps.Clipboard.Available() {
		warnColor.Fprintln(deps.Stdout, "Clipboard unavailable: copy will not work in this session.")
	}
	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprint(deps.Stdout, interactiveHelp)
		case "state":
			printState(deps.Stdout, session.State())
		case "links":
			printLinks(deps.Stdout, session.State().Result, indicators)
		case "copy":
			copyLink(deps, session.State().Result, linkctx.Artifact(strings.TrimSpace(arg)), indicators)
		default:
			result, err := session.Submit(deps.Ctx, line)
			if err != nil {
				printError(deps.Stdout, err)
				continue
			}
			renderText(deps.Stdout, result)
		}
	}
}

func copyLink(deps *Dependencies, result *linkctx.Result, form linkctx.Artifact, indicators map[linkctx.Artifact]*linkctx.CopyIndicator) {
	if result == nil {
		printError(deps.Stdout, linkctx.Errorf(linkctx.ENOTFOUND, "Nothing to copy yet. Analyze a URL first."))
		return
	}
	text, err := linkctx.NewArtifacts(result).Get(form)
	if err != nil {
		printError(deps.Stdout, err)
		return
	}
	if err := indicators[form].Copy(text); err != nil {
		printError(deps.Stdout, err)
		return
	}
	okColor.Fprintf(deps.Stdout, "Copied! %s\n", text)
}

func printLinks(w io.Writer, result *linkctx.Result, indicators map[linkctx.Artifact]*linkctx.CopyIndicator) {
	if result == nil {
		fmt.Fprintln(w, "No result yet.")
		return
	}
	links := linkctx.NewArtifacts(result)
	for _, form := range linkForms {
		text, _ := links.Get(form)
		mark := ""
		if indicators[form].Copied() {
			mark = okColor.Sprint(" (copied)")
		}
		fmt.Fprintf(w, "%-9s %s%s\n", form, text, mark)
	}
}

func printState(w io.Writer, st linkctx.GenerationState) {
	switch {
	case st.IsLoading:
		fmt.Fprintln(w, "loading")
	case st.Error != "":
		fmt.Fprintf(w, "error: %s\n", st.Error)
	case st.Result != nil:
		fmt.Fprintf(w, "result: %s\n", st.Result.OriginalURL)
	default:
		fmt.Fprintln(w, "idle")
	}
}
