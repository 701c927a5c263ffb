package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// input is the text and pattern of one search.
type input struct {
	text    []byte
	pattern []byte
	source  string // file path; empty for literal text and stdin
}

// readInput resolves the text from --text, a file argument or "-" (stdin),
// and the pattern from --pattern. With neither flag nor argument it reads
// the text and the pattern as two lines of stdin, prompting when stdin is a
// terminal.
func readInput(cmd *cobra.Command, args []string, text, pattern string) (*input, error) {
	hasText := cmd.Flags().Changed("text")
	hasPattern := cmd.Flags().Changed("pattern")

	if len(args) > 0 && hasText {
		return nil, fmt.Errorf("--text and an input file are mutually exclusive")
	}

	in := &input{pattern: []byte(pattern)}
	switch {
	case len(args) > 0 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		in.text = data
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		in.text = data
		in.source = args[0]
	case hasText:
		in.text = []byte(text)
	default:
		return promptInput(cmd, hasPattern, pattern)
	}

	if !hasPattern {
		return nil, fmt.Errorf("--pattern is required")
	}
	return in, nil
}

// promptInput reads line-oriented input: the text, then the pattern unless
// it was given as a flag.
func promptInput(cmd *cobra.Command, hasPattern bool, pattern string) (*input, error) {
	stdin := cmd.InOrStdin()
	interactive := isTerminal(stdin)
	reader := bufio.NewReader(stdin)

	if interactive {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter text: ")
	}
	text, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}

	if !hasPattern {
		if interactive {
			fmt.Fprint(cmd.ErrOrStderr(), "Enter pattern: ")
		}
		pattern, err = readLine(reader)
		if err != nil {
			return nil, fmt.Errorf("reading pattern: %w", err)
		}
	}

	return &input{text: []byte(text), pattern: []byte(pattern)}, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
