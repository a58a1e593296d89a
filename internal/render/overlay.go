package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
)

const overlayStrokePx = 2

// PaintAnnotations draws the given annotations over a rendered page raster.
// Annotations carry geometry in the display space of their authoring scale;
// when the view is at a different scale the geometry is rescaled so the
// marks stay glued to the page content. Later entries draw on top of earlier
// ones.
func PaintAnnotations(img *image.RGBA, annots []annotation.Annotation, scale float64) {
	for _, a := range annots {
		meta := a.Meta()
		factor := scale / meta.Scale
		col := color.RGBA{R: meta.Color.R, G: meta.Color.G, B: meta.Color.B, A: 255}

		switch t := a.(type) {
		case *annotation.Rect:
			drawRectOutline(img,
				int(t.X*factor), int(t.Y*factor),
				int((t.X+t.W)*factor), int((t.Y+t.H)*factor), col)
		case *annotation.Circle:
			drawCircleOutline(img,
				int((t.X+t.Radius)*factor), int((t.Y+t.Radius)*factor),
				int(t.Radius*factor), col)
		case *annotation.Text:
			drawLabel(img, int(t.X*factor), int(t.Y*factor), t.Value, col)
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

func drawHLine(img *image.RGBA, x0, x1, y int, col color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		for t := 0; t < overlayStrokePx; t++ {
			setPixel(img, x, y+t, col)
		}
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, col color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for t := 0; t < overlayStrokePx; t++ {
			setPixel(img, x+t, y, col)
		}
	}
}

func drawRectOutline(img *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	drawHLine(img, x0, x1, y0, col)
	drawHLine(img, x0, x1, y1, col)
	drawVLine(img, x0, y0, y1, col)
	drawVLine(img, x1, y0, y1, col)
}

// drawCircleOutline plots a midpoint circle around (cx, cy).
func drawCircleOutline(img *image.RGBA, cx, cy, r int, col color.Color) {
	if r <= 0 {
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		for _, p := range [][2]int{
			{cx + x, cy + y}, {cx - x, cy + y},
			{cx + x, cy - y}, {cx - x, cy - y},
			{cx + y, cy + x}, {cx - y, cy + x},
			{cx + y, cy - x}, {cx - y, cy - x},
		} {
			setPixel(img, p[0], p[1], col)
			setPixel(img, p[0], p[1]+1, col)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// drawLabel renders preview text with the fixed basicfont face. The preview
// ignores the annotation's font size; exact sizing only matters at export.
func drawLabel(img *image.RGBA, x, y int, s string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}
