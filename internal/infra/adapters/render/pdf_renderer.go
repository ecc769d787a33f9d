package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
)

var _ adapter.InvoiceRenderer = (*PDFRenderer)(nil)

// PDFRenderer produces the printable invoice document.
type PDFRenderer struct {
	companyName string
}

func NewPDFRenderer(companyName string) *PDFRenderer {
	if companyName == "" {
		companyName = "Translation Office"
	}
	return &PDFRenderer{companyName: companyName}
}

func (r *PDFRenderer) Render(ctx context.Context, inv *model.Invoice, job *model.Job, client *model.User) ([]byte, error) {
	if inv == nil || job == nil || client == nil {
		return nil, domain.ErrInvalidArgument
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, r.companyName)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice #%04d", inv.Number))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Billed to", client.Username},
		{"Issued", inv.IssuedAt.Format("2006-01-02")},
		{"Document", job.OriginalName},
		{"Language pair", model.LanguagePair(job.SourceLanguage, job.TargetLanguage)},
		{"Word count", fmt.Sprintf("%d", job.WordCount)},
	}
	for _, row := range rows {
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(45, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("%s %s", model.FormatCents(inv.AmountCents), inv.Currency), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
