// Package prompt provides the interactive confirmation adapter.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Confirmer implements domain.Confirmer by asking a y/n question on a terminal.
type Confirmer struct {
	in     *bufio.Reader
	out    io.Writer
	prompt *color.Color
}

// NewConfirmer creates a Confirmer reading stdin and writing to stdout.
func NewConfirmer() *Confirmer {
	return NewConfirmerWithIO(os.Stdin, os.Stdout, !color.NoColor)
}

// NewConfirmerWithIO creates a Confirmer with custom input and output.
// This is useful for testing.
func NewConfirmerWithIO(in io.Reader, out io.Writer, useColors bool) *Confirmer {
	prompt := color.New(color.FgYellow, color.Bold)
	if useColors {
		prompt.EnableColor()
	} else {
		prompt.DisableColor()
	}

	return &Confirmer{
		in:     bufio.NewReader(in),
		out:    out,
		prompt: prompt,
	}
}

// answer is one line read from the input.
type answer struct {
	line string
	err  error
}

// Confirm prints the prompt and reads one line of input.
// Only answers starting with "y" or "Y" count as a yes; end of input is a no.
// Cancelling ctx abandons the read and returns the context error.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("confirmation interrupted: %w", err)
	}

	if _, err := c.prompt.Fprintln(c.out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answers := make(chan answer, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("confirmation interrupted: %w", ctx.Err())
	case a := <-answers:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", a.err)
		}
		return IsAffirmative(a.line), nil
	}
}

// IsAffirmative reports whether answer starts with a case-insensitive "y"
// once surrounding whitespace is removed.
func IsAffirmative(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}
