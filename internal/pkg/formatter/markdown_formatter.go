package formatter

import (
	"bytes"
	"fmt"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *entity.GuideDocument) ([]byte, error) {
	var buf bytes.Buffer
	for _, ln := range outline(doc) {
		switch ln.kind {
		case lineSpacer:
			buf.WriteString("\n")
		case lineTitle:
			fmt.Fprintf(&buf, "# %s\n", ln.text)
		case lineHeading:
			fmt.Fprintf(&buf, "## %s\n\n", ln.text)
		case lineSubheading:
			fmt.Fprintf(&buf, "### %s\n\n", ln.text)
		case lineEmphasis:
			fmt.Fprintf(&buf, "**%s**\n\n", ln.text)
		default:
			fmt.Fprintf(&buf, "%s\n", ln.text)
		}
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
