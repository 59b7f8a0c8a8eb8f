package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
	Bold   = "\033[1m"
)

// Output handles CLI output formatting.
type Output struct {
	stdout   io.Writer
	stderr   io.Writer
	jsonMode bool
	noColor  bool
}

// New creates a new Output instance writing to stdout and stderr.
func New(jsonMode bool) *Output {
	noColor := os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
	return &Output{stdout: os.Stdout, stderr: os.Stderr, jsonMode: jsonMode, noColor: noColor}
}

// NewWriter creates an uncolored Output writing to w for both streams.
func NewWriter(w io.Writer, jsonMode bool) *Output {
	return &Output{stdout: w, stderr: w, jsonMode: jsonMode, noColor: true}
}

// JSONMode reports whether human readable output is suppressed.
func (o *Output) JSONMode() bool {
	return o.jsonMode
}

// Writer returns the stream used for regular output.
func (o *Output) Writer() io.Writer {
	return o.stdout
}

func (o *Output) color(c, text string) string {
	if o.noColor {
		return text
	}
	return c + text + Reset
}

// Success prints a success message.
func (o *Output) Success(format string, args ...any) {
	if o.jsonMode {
		return
	}
	fmt.Fprintf(o.stdout, o.color(Green, "✓ ")+format+"\n", args...)
}

// Error prints an error message.
func (o *Output) Error(format string, args ...any) {
	if o.jsonMode {
		return
	}
	fmt.Fprintf(o.stderr, o.color(Red, "✗ ")+format+"\n", args...)
}

// Warn prints a warning message.
func (o *Output) Warn(format string, args ...any) {
	if o.jsonMode {
		return
	}
	fmt.Fprintf(o.stdout, o.color(Yellow, "! ")+format+"\n", args...)
}

// Info prints an info message.
func (o *Output) Info(format string, args ...any) {
	if o.jsonMode {
		return
	}
	fmt.Fprintf(o.stdout, o.color(Cyan, "→ ")+format+"\n", args...)
}

// Header prints a header.
func (o *Output) Header(text string) {
	if o.jsonMode {
		return
	}
	fmt.Fprintln(o.stdout, o.color(Bold, text))
}

// KeyValue prints a key-value pair.
func (o *Output) KeyValue(key, value string) {
	if o.jsonMode {
		return
	}
	fmt.Fprintf(o.stdout, "  %s: %s\n", o.color(Gray, key), value)
}

// Divider prints a divider line.
func (o *Output) Divider() {
	if o.jsonMode {
		return
	}
	fmt.Fprintln(o.stdout, o.color(Gray, "─────────────────────────────────────────"))
}

// Print writes preformatted text as is.
func (o *Output) Print(text string) {
	if o.jsonMode {
		return
	}
	io.WriteString(o.stdout, text)
}

// JSON prints data as indented JSON, regardless of mode.
func (o *Output) JSON(data any) {
	enc := json.NewEncoder(o.stdout)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
