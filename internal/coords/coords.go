// Package coords converts between display space and document space.
//
// Display space is what the user draws in: canvas-relative pixels, origin at
// the top-left of the rendered page image, Y growing downward, at a given
// render scale. Document space is the PDF page's own space: points, origin at
// the bottom-left of the page, Y growing upward, independent of any scale.
package coords

import "github.com/kpauljoseph/pdfmarkup/pkg/models"

const (
	// BaselineRatio approximates a font's ascent as a fraction of its
	// size. Document-space text is anchored at its baseline, display
	// space at the top of the text box; this heuristic bridges the two
	// without querying real font metrics.
	BaselineRatio = 0.85

	// MinStrokeWidthDoc keeps exported strokes visible no matter how far
	// zoomed in the annotation was authored.
	MinStrokeWidthDoc = 0.5
)

// ToDoc maps a display-space point to document space.
func ToDoc(p models.Point, scale, pageHeight float64) models.Point {
	return models.Point{
		X: p.X / scale,
		Y: pageHeight - p.Y/scale,
	}
}

// ToDisplay maps a document-space point back to display space at the given
// scale. Inverse of ToDoc.
func ToDisplay(p models.Point, scale, pageHeight float64) models.Point {
	return models.Point{
		X: p.X * scale,
		Y: pageHeight*scale - p.Y*scale,
	}
}

// RectToDoc maps a display-space rectangle (top-left anchored) to a
// document-space rectangle anchored at its bottom-left corner. Because Y
// inverts direction, the document Y comes from the display rect's far edge:
// pageHeight - (y+h)/scale, not a sign flip on the near corner.
func RectToDoc(r models.Rect, scale, pageHeight float64) models.Rect {
	return models.Rect{
		X: r.X / scale,
		Y: pageHeight - (r.Y+r.H)/scale,
		W: r.W / scale,
		H: r.H / scale,
	}
}

// LengthToDoc scales a display-space length (width, height, radius) to
// document space. Lengths scale uniformly with no distortion.
func LengthToDoc(v, scale float64) float64 {
	return v / scale
}

// StrokeWidthDoc converts a desired display-space stroke width to document
// space, floored so thin strokes survive export at any authoring scale.
func StrokeWidthDoc(displayWidth, scale float64) float64 {
	w := displayWidth / scale
	if w < MinStrokeWidthDoc {
		return MinStrokeWidthDoc
	}
	return w
}

// BaselineToDoc returns the document-space baseline Y and font size for text
// whose box top sits at displayY with the given display-space font size.
func BaselineToDoc(displayY, fontSizeDisplay, scale, pageHeight float64) (baselineY, fontSizeDoc float64) {
	fontSizeDoc = fontSizeDisplay / scale
	baselineY = pageHeight - displayY/scale - fontSizeDoc*BaselineRatio
	return baselineY, fontSizeDoc
}
