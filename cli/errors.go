package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/lucaschema/loader"
	"github.com/robinvdvleuten/lucaschema/output"
	"github.com/robinvdvleuten/lucaschema/schema"
)

// ErrorRenderer renders document problems with terminal styling and the
// source lines they point at.
type ErrorRenderer struct {
	filename string
	source   []byte
	format   loader.Format
	styles   *output.Styles
}

// NewErrorRenderer creates a renderer for problems found in source. Styling
// follows the capabilities of w.
func NewErrorRenderer(w io.Writer, filename string, source []byte) *ErrorRenderer {
	format, _ := loader.DetectFormat(filename, source)
	return &ErrorRenderer{
		filename: filename,
		source:   source,
		format:   format,
		styles:   output.NewStyles(w),
	}
}

// Render formats a single problem. Problems that name a field get a
// file:line:column prefix and the surrounding source lines with a caret.
func (r *ErrorRenderer) Render(p schema.FieldError) string {
	var pos loader.Position
	var found bool
	if p.Field != "" && r.source != nil {
		pos, found = loader.Locate(r.format, r.source, p.Field)
	}

	var buf strings.Builder
	if found {
		buf.WriteString(r.styles.FilePath(fmt.Sprintf("%s:%d:%d", r.filename, pos.Line, pos.Column)))
		buf.WriteString(": ")
	}
	buf.WriteString(r.styles.Error(p.Error()))
	buf.WriteString(r.styles.Dim(fmt.Sprintf(" [%s]", p.Code)))

	if p.Suggestion != "" {
		buf.WriteString("\n   ")
		buf.WriteString(r.styles.Info("hint: " + p.Suggestion))
	}

	if found {
		buf.WriteString("\n\n")
		r.writeContext(&buf, pos)
	}

	return buf.String()
}

// RenderAll formats multiple problems, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(problems []schema.FieldError) string {
	rendered := make([]string, len(problems))
	for i, p := range problems {
		rendered[i] = strings.TrimRight(r.Render(p), "\n")
	}
	return strings.Join(rendered, "\n\n")
}

func (r *ErrorRenderer) writeContext(buf *strings.Builder, pos loader.Position) {
	sourceLines := strings.Split(string(r.source), "\n")

	startLine := max(pos.Line-3, 0)
	endLine := min(pos.Line, len(sourceLines)-1)

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(r.styles.Dim(sourceLines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(r.styles.Error("^"))
			buf.WriteByte('\n')
		}
	}
}
