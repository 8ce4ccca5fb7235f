package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// ANSI styles.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiDim   = "\033[90m"
)

var plain atomic.Bool

// DisableColors turns off ANSI styling in Format and PrintError.
func DisableColors() { plain.Store(true) }

// EnableColors turns ANSI styling back on.
func EnableColors() { plain.Store(false) }

func paint(style, text string) string {
	if plain.Load() || text == "" {
		return text
	}
	return style + text + ansiReset
}

// Format renders the error for a terminal: a header line, the location with
// an excerpt of the file, then the detail, hint, example and cause.
func (e *ToastError) Format() string {
	var b strings.Builder
	b.WriteString("\n" + e.header() + "\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(ansiCyan, e.Location.String()))
		e.writeExcerpt(&b)
	}
	if e.Detail != "" {
		for _, line := range wrap(e.Detail, 72) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(ansiCyan, "Hint: "), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint(ansiCyan, "Example:"))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", paint(ansiDim, "Caused by: "), e.Wrapped)
	}
	return b.String()
}

func (e *ToastError) header() string {
	label := "ERROR: "
	if e.Code != "" {
		label = "ERROR " + e.Code + ": "
	}
	return paint(ansiRed+ansiBold, label) + e.Message
}

// writeExcerpt prints Context with a gutter, marking the error line and
// column.
func (e *ToastError) writeExcerpt(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}
	first := e.Location.Line - len(e.Context)/2
	if first < 1 {
		first = 1
	}
	for i, text := range e.Context {
		n := first + i
		marker := "  "
		if n == e.Location.Line {
			marker = paint(ansiRed, "→ ")
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", marker, n, paint(ansiDim, " │ "), text)
		if n == e.Location.Line && e.Location.Column > 0 {
			fmt.Fprintf(b, "        %s%s%s\n", paint(ansiDim, "│ "),
				strings.Repeat(" ", e.Location.Column-1), paint(ansiRed, "^"))
		}
	}
	b.WriteString("\n")
}

// FormatCompact renders the error on one line, in the file:line:col form
// editors and CI annotations understand.
func (e *ToastError) FormatCompact() string {
	var parts []string
	if loc := e.Location.String(); loc != "" {
		parts = append(parts, loc)
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	msg := e.Message
	if e.Wrapped != nil {
		msg += " (" + e.Wrapped.Error() + ")"
	}
	return strings.Join(append(parts, msg), ": ")
}

type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      string    `json:"cause,omitempty"`
}

// MarshalJSON encodes the error for machine-readable reports.
func (e *ToastError) MarshalJSON() ([]byte, error) {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	return json.Marshal(out)
}

// wrap breaks text into lines of at most width bytes at word boundaries.
// Words longer than width get a line of their own.
func wrap(text string, width int) []string {
	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes err to w, formatted when it is a ToastError.
func Fprint(w io.Writer, err error) {
	if te, ok := err.(*ToastError); ok {
		fmt.Fprint(w, te.Format())
		return
	}
	fmt.Fprintf(w, "\n%s%s\n\n", paint(ansiRed+ansiBold, "ERROR: "), err)
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
