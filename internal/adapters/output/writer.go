// Package output prints the plain, machine-readable lines ioc-deploy emits,
// currently the --version answer.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer prints ioc-deploy's version line. Everything else goes through the logger.
type Writer struct {
	out io.Writer
}

// NewWriter returns a Writer bound to stdout.
func NewWriter() *Writer {
	return &Writer{out: os.Stdout}
}

// NewWriterWithOutput returns a Writer bound to out.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteVersion prints version alone on one line, so scripts can capture
// `ioc-deploy --version` directly.
func (w *Writer) WriteVersion(version string) error {
	_, err := fmt.Fprintln(w.out, version)
	return err
}
