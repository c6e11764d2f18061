// Package export writes candidate tables as Excel workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the worksheet holding the candidate rows.
const SheetName = "Candidates"

// Header is the first row of the sheet.
var Header = []string{
	"Name", "Email", "Score", "Band", "Skills", "Experience", "Education",
	"Technical Skills", "Communication", "Leadership", "Cultural Fit", "Experience Relevance",
}

var colWidths = map[string]float64{
	"A": 24, "B": 30, "C": 8, "D": 14, "E": 40, "F": 14, "G": 30,
	"H": 16, "I": 16, "J": 12, "K": 14, "L": 20,
}

// WriteTable writes the rows, in the given order, as an xlsx workbook to w.
func WriteTable(w io.Writer, role string, rows []candidates.Candidate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: role + " candidates", Creator: "VettEdge"}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4051E2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, width := range colWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, c := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			c.Name,
			c.Email,
			c.Score,
			string(candidates.Classify(c.Score)),
			strings.Join(c.Skills, ", "),
			c.Experience,
			c.Education,
			c.Breakdown.Technical,
			c.Breakdown.Communication,
			c.Breakdown.Leadership,
			c.Breakdown.Cultural,
			c.Breakdown.Experience,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", c.ID, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// FileName returns the download name for a role's export.
func FileName(role string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(role), "-"))
	if slug == "" {
		return "candidates.xlsx"
	}
	return slug + "-candidates.xlsx"
}
