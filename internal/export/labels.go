// QR-coded package labels for warehouse staging. Each placed package gets a
// label naming the vehicle it goes on and where in the bay it belongs.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/cargopack/internal/model"
)

// LabelInfo holds the data encoded into each package label's QR code.
type LabelInfo struct {
	PackageID   string  `json:"id"`
	PackageName string  `json:"name"`
	Width       float64 `json:"width_cm"`
	Height      float64 `json:"height_cm"`
	Thickness   float64 `json:"thickness_cm"`
	Weight      float64 `json:"weight_kg"`
	Platform    string  `json:"platform"`
	Vehicle     string  `json:"vehicle"`
	LoadIndex   int     `json:"load"`
	Rotation    string  `json:"rotation"`
	X           float64 `json:"x_cm"`
	Y           float64 `json:"y_cm"`
	Z           float64 `json:"z_cm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all placed packages.
// Each label contains the package name, dimensions, destination vehicle and a
// QR code encoding the placement as JSON. Labels are laid out on a standard
// label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.ClassifyResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no placed packages to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PackageName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PackageID, info.LoadIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Package name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.PackageName
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	// Dimensions and weight
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f cm, %.1f kg", info.Width, info.Height, info.Thickness, info.Weight)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Destination and position
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	dest := fmt.Sprintf("%s / %s #%d", info.Platform, info.Vehicle, info.LoadIndex)
	pdf.CellFormat(textW, 3, dest, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pos := fmt.Sprintf("@ (%.0f, %.0f, %.0f) %s", info.X, info.Y, info.Z, info.Rotation)
	pdf.CellFormat(textW, 3, pos, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a classification result
// for use in testing or alternative export formats.
func CollectLabelInfos(result model.ClassifyResult) []LabelInfo {
	var labels []LabelInfo
	for _, pr := range result.Platforms {
		for loadIdx, load := range platformLoads(pr) {
			for _, p := range load.Placements {
				labels = append(labels, LabelInfo{
					PackageID:   p.Package.ID,
					PackageName: p.Package.Name,
					Width:       p.Package.Dims.Width,
					Height:      p.Package.Dims.Height,
					Thickness:   p.Package.Dims.Thickness,
					Weight:      p.Package.Weight,
					Platform:    pr.Platform,
					Vehicle:     load.Vehicle.Name,
					LoadIndex:   loadIdx + 1,
					Rotation:    p.Rotation.String(),
					X:           p.Position.X,
					Y:           p.Position.Y,
					Z:           p.Position.Z,
				})
			}
		}
	}
	return labels
}
