package export

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/jung-kurt/gofpdf"
)

// Layout of the PDF export, in millimetres.
const (
	pdfFont        = "Arial"
	pdfFontSize    = 12
	pdfTitleHeight = 10
	pdfCellWidth   = 38
	pdfCellHeight  = 10
)

// WritePDF writes rows as an A4 portrait document: a centred title line
// followed by a bordered five-column table. gofpdf breaks pages as needed.
func WritePDF(w io.Writer, rows []core.ReportRow) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", pdfFontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.CellFormat(0, pdfTitleHeight, Title, "", 1, "C", false, 0, "")

	writeLine := func(values []string) {
		for _, v := range values {
			pdf.CellFormat(pdfCellWidth, pdfCellHeight, tr(v), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	writeLine(Header)
	for _, r := range rows {
		writeLine(cells(r))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
