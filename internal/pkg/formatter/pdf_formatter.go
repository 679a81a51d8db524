package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime we copy fonts to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	pdfSpacerHeight = 4.0
	pdfItemIndent   = 5.0
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

func pdfStyle(kind lineKind) (style string, size float64, indent float64) {
	switch kind {
	case lineTitle:
		return "B", 20, 0
	case lineHeading:
		return "B", 16, 0
	case lineSubheading:
		return "B", 13, 0
	case lineEmphasis:
		return "B", 11, 0
	case lineItem:
		return "", 11, pdfItemIndent
	default:
		return "", 11, 0
	}
}

// Format renders the document with manual pagination: a line that would
// cross the bottom margin moves to a fresh page whole, it is never split.
func (mf *PDFFormatter) Format(doc *entity.GuideDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	// Try to use UTF-8 capable DejaVuSans font, bundled with the project.
	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	printableWidth := pageWidth - left - right
	maxY := pageHeight - bottom
	y := top

	for _, ln := range outline(doc) {
		if ln.kind == lineSpacer {
			y += pdfSpacerHeight
			continue
		}

		style, size, indent := pdfStyle(ln.kind)
		pdf.SetFont(fontName, style, size)
		_, unitSize := pdf.GetFontSize()
		lineHeight := unitSize * 1.5

		for _, wrapped := range pdf.SplitText(ln.text, printableWidth-indent) {
			if y+lineHeight > maxY {
				pdf.AddPage()
				y = top
			}
			pdf.SetXY(left+indent, y)
			pdf.CellFormat(printableWidth-indent, lineHeight, wrapped, "", 0, "L", false, 0, "")
			y += lineHeight
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
