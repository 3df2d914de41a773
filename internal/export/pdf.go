// Package export provides functionality for exporting load plans to various
// file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/cargopack/internal/model"
)

// packageColor represents an RGB color for a placed package.
type packageColor struct {
	R, G, B int
}

var packageColors = []packageColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a classification result. Each loaded
// vehicle is rendered on its own page as a top-down floor plan of the cargo
// bay, followed by a summary page with per-platform statistics.
func ExportPDF(path string, result model.ClassifyResult) error {
	if len(result.Platforms) == 0 {
		return fmt.Errorf("no platforms to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, pr := range result.Platforms {
		for i, load := range platformLoads(pr) {
			pdf.AddPage()
			renderLoadPage(pdf, pr.Platform, load, i+1)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// platformLoads returns the loads of a platform result in render order,
// covering both single-best and distribution mode.
func platformLoads(pr model.PlatformResult) []model.LoadResult {
	if pr.Best != nil {
		return []model.LoadResult{*pr.Best}
	}
	return pr.Loads
}

// renderLoadPage draws one vehicle load on the current PDF page. The diagram
// is the bay floor seen from above: x runs along the bay width, y along the
// bay depth. Stacked packages are drawn in placement order so higher boxes
// overlay the ones below them.
func renderLoadPage(pdf *fpdf.Fpdf, platform string, load model.LoadResult, loadNum int) {
	bay := load.Vehicle.Bay

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s / %s (%.0f x %.0f x %.0f cm)",
		platform, load.Vehicle.Name, bay.Width, bay.Height, bay.Thickness)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Load %d | Packages: %d | Weight: %.1f / %.1f kg | Volume used: %.1f%%",
		loadNum, load.PackedCount(), load.LoadedWeight(), load.Vehicle.WeightLimit, load.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area and scale for the floor plan
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / bay.Width
	scaleY := drawHeight / bay.Thickness
	scale := math.Min(scaleX, scaleY)

	canvasW := bay.Width * scale
	canvasH := bay.Thickness * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Bay floor background
	pdf.SetFillColor(225, 225, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Placed packages, footprint on the floor
	for i, p := range load.Placements {
		col := packageColors[i%len(packageColors)]
		ext := p.Extent()
		pw := ext.X * scale
		ph := ext.Y * scale
		px := offsetX + p.Position.X*scale
		py := offsetY + p.Position.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Package label (only if rectangle is large enough)
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			name := p.Package.Name
			level := fmt.Sprintf("z %.0f-%.0f", p.Position.Z, p.Position.Z+ext.Z)

			nameW := pdf.GetStringWidth(name)
			levelW := pdf.GetStringWidth(level)

			if nameW < pw-2 {
				pdf.SetXY(px+(pw-nameW)/2, py+ph/2-4)
				pdf.CellFormat(nameW, 4, name, "", 0, "C", false, 0, "")
			}
			if ph > 14 && levelW < pw-2 {
				pdf.SetXY(px+(pw-levelW)/2, py+ph/2)
				pdf.CellFormat(levelW, 4, level, "", 0, "C", false, 0, "")
			}
		}
	}

	drawBayAnnotations(pdf, bay, offsetX, offsetY, canvasW, canvasH)
	drawPackageLegend(pdf, load, offsetY+canvasH+5)
}

// drawBayAnnotations adds width and depth dimension labels outside the bay rectangle.
func drawBayAnnotations(pdf *fpdf.Fpdf, bay model.Dimensions, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the bay)
	widthLabel := fmt.Sprintf("%.0f cm", bay.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Depth annotation (to the left, rotated)
	depthLabel := fmt.Sprintf("%.0f cm", bay.Thickness)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPackageLegend renders a compact legend of placed packages at the bottom
// of the load page.
func drawPackageLegend(pdf *fpdf.Fpdf, load model.LoadResult, startY float64) {
	if len(load.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Packages loaded:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range load.Placements {
		col := packageColors[i%len(packageColors)]
		label := fmt.Sprintf("%s (%.0fx%.0fx%.0f, %s)",
			p.Package.Name, p.Package.Dims.Width, p.Package.Dims.Height, p.Package.Dims.Thickness,
			p.Rotation.String())
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with per-platform statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.ClassifyResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	mode := "Best Vehicle per Platform"
	if result.Distributed {
		mode = "Distribution across Fleet"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary: "+mode, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Platform Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 30, 55, 35, 35, 35}
	headers := []string{"Platform", "Vehicles", "Packages Placed", "Unplaced", "Weight (kg)", "Volume (%)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, pr := range result.Platforms {
		loads := platformLoads(pr)
		var weight, utilization float64
		for _, l := range loads {
			weight += l.LoadedWeight()
		}
		if len(loads) > 0 {
			for _, l := range loads {
				utilization += l.Utilization()
			}
			utilization /= float64(len(loads))
		}

		xPos = marginLeft
		rowData := []string{
			pr.Platform,
			fmt.Sprintf("%d", len(loads)),
			fmt.Sprintf("%d of %d (%.1f%%)", pr.PackedCount(), pr.TotalPackages, pr.PackedPercent()),
			fmt.Sprintf("%d", pr.TotalPackages-pr.PackedCount()),
			fmt.Sprintf("%.1f", weight),
			fmt.Sprintf("%.1f", utilization),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Unplaced package warning per platform
	for _, pr := range result.Platforms {
		unplaced := platformUnplaced(pr)
		if len(unplaced) == 0 {
			continue
		}

		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("WARNING: Unplaced Packages (%s)", pr.Platform), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, pkg := range unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f x %.0f cm, %.1f kg",
				pkg.Name, pkg.Dims.Width, pkg.Dims.Height, pkg.Dims.Thickness, pkg.Weight)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CargoPack - Cargo Load Optimizer", "", 0, "C", false, 0, "")
}

// platformUnplaced returns the unplaced packages of a platform result,
// covering both single-best and distribution mode.
func platformUnplaced(pr model.PlatformResult) []model.Package {
	if pr.Best != nil {
		return pr.Best.Unplaced
	}
	return pr.Unplaced
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
