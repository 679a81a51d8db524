package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(guide *entity.GuideDocument) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	for _, ln := range outline(guide) {
		par := doc.AddParagraph()
		switch ln.kind {
		case lineSpacer:
			continue
		case lineTitle:
			par.SetStyle("Title")
		case lineHeading:
			par.SetStyle("Heading1")
		case lineSubheading:
			par.SetStyle("Heading2")
		}

		run := par.AddRun()
		if ln.kind == lineEmphasis {
			run.Properties().SetBold(true)
		}
		run.AddText(ln.text)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
