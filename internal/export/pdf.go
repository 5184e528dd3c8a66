package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/apperror"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
)

// Layout constants, A4 portrait in millimetres.
const (
	pageWidth  = 210.0
	pageMargin = 10.0

	tableRowsPerPage = 25
	tableRowHeight   = 8.0
	tableHeaderSize  = 9.0
	tableCellSize    = 8.0

	cardColumns  = 2
	cardRows     = 7
	cardsPerPage = cardColumns * cardRows
	cardGap      = 5.0
)

// Renderer builds the PDF documents. The zero value is not usable; call
// NewRenderer.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a Renderer using the wall clock for the report header.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// WithClock overrides the time source so tests get byte-stable headers.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Records renders the tabular report: the chosen columns over the filtered
// record set, 25 rows to a page, with a title block on the first page only.
// Exporting nothing is refused — the caller should keep its filters or
// selection, not receive an empty document.
func (r *Renderer) Records(records []model.Record, fieldKeys []string) ([]byte, error) {
	if len(records) == 0 {
		return nil, apperror.PreconditionFailed("no records to export")
	}
	if len(fieldKeys) == 0 {
		return nil, apperror.PreconditionFailed("select at least one field to export")
	}
	for _, key := range fieldKeys {
		if !KnownField(key) {
			return nil, apperror.ValidationFailed("fields", fmt.Sprintf("unknown export field %q", key))
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	printable := pageWidth - 2*pageMargin
	colWidth := printable / float64(len(fieldKeys))

	for start := 0; start < len(records); start += tableRowsPerPage {
		pdf.AddPage()

		if start == 0 {
			pdf.SetFont("Helvetica", "B", 16)
			pdf.SetTextColor(51, 51, 51)
			pdf.CellFormat(printable, 8, "User Records Export", "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(102, 102, 102)
			pdf.CellFormat(printable, 5,
				fmt.Sprintf("Generated on: %s", r.now().Format("02/01/2006 15:04")),
				"", 1, "L", false, 0, "")
			pdf.CellFormat(printable, 5,
				fmt.Sprintf("Total Records: %d", len(records)),
				"", 1, "L", false, 0, "")
			pdf.Ln(4)
		}

		// Header row, repeated on every page.
		pdf.SetFont("Helvetica", "B", tableHeaderSize)
		pdf.SetFillColor(66, 133, 244)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(221, 221, 221)
		for _, key := range fieldKeys {
			pdf.CellFormat(colWidth, tableRowHeight, FieldLabel(key), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", tableCellSize)
		pdf.SetTextColor(0, 0, 0)

		end := min(start+tableRowsPerPage, len(records))
		for i := start; i < end; i++ {
			// Zebra striping by global row index, matching the on-screen table.
			fill := i%2 == 0
			pdf.SetFillColor(248, 249, 250)
			for _, key := range fieldKeys {
				pdf.CellFormat(colWidth, tableRowHeight,
					fitCell(pdf, FieldValue(records[i], key), colWidth),
					"1", 0, "L", fill, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering records pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// AddressList renders the card-style address sheet: a 2x7 grid per A4 page,
// each card carrying the running number, name and address.
func (r *Renderer) AddressList(records []model.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, apperror.PreconditionFailed("no records to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	printable := pageWidth - 2*pageMargin
	cardWidth := (printable - cardGap*(cardColumns-1)) / cardColumns
	// 7 rows of 34mm plus 6 gaps fits inside the 277mm printable height.
	cardHeight := 34.0

	for i, record := range records {
		slot := i % cardsPerPage
		if slot == 0 {
			pdf.AddPage()
		}

		col := slot % cardColumns
		row := slot / cardColumns
		x := pageMargin + float64(col)*(cardWidth+cardGap)
		y := pageMargin + float64(row)*(cardHeight+cardGap)

		pdf.SetDrawColor(208, 208, 208)
		pdf.Rect(x, y, cardWidth, cardHeight, "D")

		// Running number, top-right.
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(136, 136, 136)
		pdf.SetXY(x, y+2)
		pdf.CellFormat(cardWidth-3, 4, fmt.Sprintf("#%d", i+1), "", 0, "R", false, 0, "")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(31, 31, 31)
		pdf.SetXY(x+4, y+7)
		pdf.CellFormat(cardWidth-8, 6, fitCell(pdf, orDash(record.Name), cardWidth-8), "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(51, 51, 51)
		pdf.SetXY(x+4, y+14)
		pdf.MultiCell(cardWidth-8, 5, orDash(record.Address), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering address list pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fitCell truncates text that would overflow a fixed-width cell, keeping an
// ellipsis so the cut is visible in the document.
func fitCell(pdf *fpdf.Fpdf, text string, width float64) string {
	const pad = 2.0
	if pdf.GetStringWidth(text) <= width-pad {
		return text
	}
	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if pdf.GetStringWidth(string(runes)+"...") <= width-pad {
			break
		}
	}
	return string(runes) + "..."
}
