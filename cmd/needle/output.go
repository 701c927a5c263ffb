package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for human output
type styles struct {
	heading   *color.Color
	algorithm *color.Color
	index     *color.Color
	match     *color.Color
	metadata  *color.Color
	ok        *color.Color
	fail      *color.Color
}

// newStyles creates color formatters for human output
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:   color.New(color.Bold),
		algorithm: color.New(color.Bold, color.FgHiBlue),
		index:     color.New(color.FgHiGreen),
		match:     color.New(color.FgYellow),
		metadata:  color.New(color.FgHiBlue),
		ok:        color.New(color.FgGreen),
		fail:      color.New(color.Bold, color.FgRed),
	}

	if !enabled {
		for _, c := range []*color.Color{s.heading, s.algorithm, s.index, s.match, s.metadata, s.ok, s.fail} {
			c.DisableColor()
		}
	}

	return s
}

// stylesFor resolves a --color mode into styles.
func stylesFor(mode string) (*styles, error) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		// Check if stdout is a TTY and NO_COLOR is not set
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != ""
	default:
		return nil, fmt.Errorf("unknown color mode: %s", mode)
	}
	return newStyles(!color.NoColor), nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// snippetParts holds separated snippet components for colored output
type snippetParts struct {
	prefix   string // "..." if truncated at start
	before   string
	matching string
	after    string
	suffix   string // "..." if truncated at end
}

// formatSnippetWithParts truncates before+matching+after to about maxLen
// bytes, keeping the window centered on the match.
func formatSnippetWithParts(before, matching, after []byte, maxLen int) snippetParts {
	full := string(before) + string(matching) + string(after)

	if len(full) <= maxLen {
		return snippetParts{
			before:   string(before),
			matching: string(matching),
			after:    string(after),
		}
	}

	matchStart := len(before)
	matchEnd := matchStart + len(matching)
	matchLen := len(matching)

	// reserve 6 for potential "..." on each side
	if matchLen > maxLen-6 {
		return snippetParts{
			prefix:   "...",
			matching: string(matching[:maxLen-6]),
			suffix:   "...",
		}
	}

	halfContext := (maxLen - matchLen - 6) / 2

	start := matchStart - halfContext
	end := matchEnd + halfContext

	if start < 0 {
		end -= start
		start = 0
	}
	if end > len(full) {
		start -= end - len(full)
		if start < 0 {
			start = 0
		}
		end = len(full)
	}

	parts := snippetParts{
		before:   full[start:matchStart],
		matching: full[matchStart:matchEnd],
		after:    full[matchEnd:end],
	}
	if start > 0 {
		parts.prefix = "..."
	}
	if end < len(full) {
		parts.suffix = "..."
	}
	return parts
}
