// Package report renders the same tabular data already computed for the
// list-mons CLI command to XLSX or PDF, for operators who want a file to
// hand off rather than a terminal table.
package report

import (
	"bytes"
	"fmt"

	"github.com/signintech/gopdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pkroam/pkroam/internal/codeerr"
)

// Row is one creature's summary line. Box is "P" for a party slot, the
// decimal box number for a box slot, or "ROAM" for a roam store creature
// (whose Slot then holds its roam store id).
type Row struct {
	Box      string
	Slot     int
	Species  uint16
	Nickname string
}

var header = []string{"Box", "Slot", "Species", "Nickname"}

// ExportXLSX writes rows as a single-sheet spreadsheet at path.
func ExportXLSX(rows []Row, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		r := i + 2 // header occupies row 1
		cells := [4]interface{}{row.Box, row.Slot, row.Species, row.Nickname}
		for col, val := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			f.SetCellValue(sheet, cell, val)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "writing xlsx report")
	}
	return nil
}

const (
	reportFontName   = "goregular"
	reportFontSize   = 11
	reportLineHeight = 16.0
	reportLeftMargin = 10.0
	reportTopMargin  = 10.0
)

// ExportPDF renders rows as a single-column-per-field table, one row per
// creature, into a PDF at path.
func ExportPDF(rows []Row, path string) error {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFontByReader(reportFontName, bytes.NewReader(goregular.TTF)); err != nil {
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "loading report font")
	}
	if err := pdf.SetFont(reportFontName, "", reportFontSize); err != nil {
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "setting report font")
	}
	pdf.AddPage()
	pdf.SetX(reportLeftMargin)
	pdf.SetY(reportTopMargin)

	writeLine(pdf, fmt.Sprintf("%-6s %-5s %-8s %s", header[0], header[1], header[2], header[3]))
	for _, row := range rows {
		writeLine(pdf, fmt.Sprintf("%-6s %-5d %-8d %s", row.Box, row.Slot, row.Species, row.Nickname))
	}

	if err := pdf.WritePdf(path); err != nil {
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "writing pdf report")
	}
	return nil
}

func writeLine(pdf *gopdf.GoPdf, line string) {
	rect := &gopdf.Rect{W: gopdf.PageSizeA4.W - 2*reportLeftMargin, H: reportLineHeight}
	pdf.MultiCell(rect, line)
}
