package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cargopack/internal/model"
)

// ExportXLSX writes a classification result to an Excel workbook: a summary
// sheet with per-platform statistics plus one sheet per platform listing every
// placement and the unplaced packages.
func ExportXLSX(path string, result model.ClassifyResult) error {
	if len(result.Platforms) == 0 {
		return fmt.Errorf("no platforms to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	const summary = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), summary); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	if err := writeSummarySheet(f, summary, headerStyle, result); err != nil {
		return err
	}

	for _, pr := range result.Platforms {
		if err := writePlatformSheet(f, headerStyle, pr); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, sheet string, headerStyle int, result model.ClassifyResult) error {
	mode := "Best vehicle per platform"
	if result.Distributed {
		mode = "Distribution across fleet"
	}
	setCell(f, sheet, 1, 1, "Load Plan Summary")
	setCell(f, sheet, 1, 2, mode)

	headers := []string{"Platform", "Vehicles", "Total Packages", "Placed", "Unplaced", "Placed %", "Loaded Weight (kg)"}
	for col, h := range headers {
		setCell(f, sheet, col+1, 4, h)
	}
	if err := styleRow(f, sheet, headerStyle, 4, len(headers)); err != nil {
		return err
	}

	for i, pr := range result.Platforms {
		loads := platformLoads(pr)
		var weight float64
		for _, l := range loads {
			weight += l.LoadedWeight()
		}

		row := 5 + i
		setCell(f, sheet, 1, row, pr.Platform)
		setCell(f, sheet, 2, row, len(loads))
		setCell(f, sheet, 3, row, pr.TotalPackages)
		setCell(f, sheet, 4, row, pr.PackedCount())
		setCell(f, sheet, 5, row, pr.TotalPackages-pr.PackedCount())
		setCell(f, sheet, 6, row, pr.PackedPercent())
		setCell(f, sheet, 7, row, weight)
	}

	return f.SetColWidth(sheet, "A", "G", 18)
}

func writePlatformSheet(f *excelize.File, headerStyle int, pr model.PlatformResult) error {
	sheet := sanitizeSheetName(pr.Platform)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet for %s: %w", pr.Platform, err)
	}

	headers := []string{"Vehicle", "Load", "Package", "Width (cm)", "Height (cm)", "Thickness (cm)", "Weight (kg)", "Rotation", "X", "Y", "Z"}
	for col, h := range headers {
		setCell(f, sheet, col+1, 1, h)
	}
	if err := styleRow(f, sheet, headerStyle, 1, len(headers)); err != nil {
		return err
	}

	row := 2
	for loadIdx, load := range platformLoads(pr) {
		for _, p := range load.Placements {
			d := p.Package.Dims
			setCell(f, sheet, 1, row, load.Vehicle.Name)
			setCell(f, sheet, 2, row, loadIdx+1)
			setCell(f, sheet, 3, row, p.Package.Name)
			setCell(f, sheet, 4, row, d.Width)
			setCell(f, sheet, 5, row, d.Height)
			setCell(f, sheet, 6, row, d.Thickness)
			setCell(f, sheet, 7, row, p.Package.Weight)
			setCell(f, sheet, 8, row, p.Rotation.String())
			setCell(f, sheet, 9, row, p.Position.X)
			setCell(f, sheet, 10, row, p.Position.Y)
			setCell(f, sheet, 11, row, p.Position.Z)
			row++
		}
	}

	unplaced := platformUnplaced(pr)
	if len(unplaced) > 0 {
		row++
		setCell(f, sheet, 1, row, "Unplaced packages")
		row++
		for _, pkg := range unplaced {
			d := pkg.Dims
			setCell(f, sheet, 3, row, pkg.Name)
			setCell(f, sheet, 4, row, d.Width)
			setCell(f, sheet, 5, row, d.Height)
			setCell(f, sheet, 6, row, d.Thickness)
			setCell(f, sheet, 7, row, pkg.Weight)
			row++
		}
	}

	return f.SetColWidth(sheet, "A", "K", 14)
}

// setCell writes a value by 1-based coordinates, ignoring coordinate errors
// which cannot occur for the small fixed layouts used here.
func setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	f.SetCellValue(sheet, cell, value)
}

// styleRow applies a style to the first n cells of a row.
func styleRow(f *excelize.File, sheet string, style, row, n int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(n, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

// sanitizeSheetName trims a platform name to a valid Excel sheet name.
// Sheet names are limited to 31 characters and a restricted character set.
func sanitizeSheetName(name string) string {
	invalid := []rune{':', '\\', '/', '?', '*', '[', ']'}
	out := []rune(name)
	for i, r := range out {
		for _, bad := range invalid {
			if r == bad {
				out[i] = '_'
			}
		}
	}
	if len(out) > 31 {
		out = out[:31]
	}
	return string(out)
}
