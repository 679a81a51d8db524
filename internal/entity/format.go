package entity

import "fmt"

// ResultFormat selects the export rendering for a finished document.
type ResultFormat string

const (
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
	FormatMarkdown ResultFormat = "markdown"
)

// ParseResultFormat maps a request parameter to a supported format.
func ParseResultFormat(value string) (ResultFormat, error) {
	switch ResultFormat(value) {
	case FormatPDF, FormatDOCX, FormatMarkdown:
		return ResultFormat(value), nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
}
