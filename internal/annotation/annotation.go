// Package annotation defines the annotation variants drawn over a rendered
// PDF page. Geometry is expressed in display pixels at the render scale that
// was active when the annotation was authored; that scale is recorded on the
// annotation and used again at export time.
package annotation

import (
	"fmt"
	"strings"

	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

// Common holds the fields shared by every annotation variant.
type Common struct {
	// ID is opaque and unique within the document session.
	ID    string
	Page  int // 1-based
	Color models.RGB
	// Scale is the render scale active when the annotation was authored.
	// Display-pixel geometry is only meaningful relative to it.
	Scale float64
	// Drawing marks a provisional annotation whose pointer gesture is
	// still in progress. At most one such annotation exists at a time.
	Drawing bool
}

func (c *Common) validate(pageCount int) error {
	if c.ID == "" {
		return fmt.Errorf("annotation: empty id")
	}
	if c.Page < 1 || c.Page > pageCount {
		return fmt.Errorf("annotation: page %d out of range [1,%d]", c.Page, pageCount)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("annotation: non-positive scale %g", c.Scale)
	}
	return nil
}

// Annotation is the closed set of page markings: *Rect, *Circle and *Text.
// Interpreters type-switch over the three variants exhaustively.
type Annotation interface {
	Meta() *Common
	isAnnotation()
}

// Rect is a rectangle outline anchored at its display-space top-left corner.
type Rect struct {
	Common
	X float64
	Y float64
	W float64
	H float64
}

// Circle is a circle outline described by its square display-space bounding
// box. W and H are always equal and Radius is half the side.
type Circle struct {
	Common
	X      float64
	Y      float64
	W      float64
	H      float64
	Radius float64
}

// Text is a committed text label anchored at the display-space top-left of
// its text box. Unlike shapes, text is never provisional: it is created only
// when the entry is committed with non-empty content.
type Text struct {
	Common
	X        float64
	Y        float64
	Value    string
	FontSize float64 // display pixels at the authoring scale
}

func (r *Rect) Meta() *Common   { return &r.Common }
func (c *Circle) Meta() *Common { return &c.Common }
func (t *Text) Meta() *Common   { return &t.Common }

func (*Rect) isAnnotation()   {}
func (*Circle) isAnnotation() {}
func (*Text) isAnnotation()   {}

// NewRect validates and builds a rectangle annotation. Zero width or height
// is allowed so that a provisional rectangle can exist from the moment the
// pointer goes down.
func NewRect(meta Common, pageCount int, x, y, w, h float64) (*Rect, error) {
	if err := meta.validate(pageCount); err != nil {
		return nil, err
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("annotation: negative rect size %gx%g", w, h)
	}
	return &Rect{Common: meta, X: x, Y: y, W: w, H: h}, nil
}

// NewCircle validates and builds a circle annotation from its bounding box
// side. The box is forced square, so a single side length defines it.
func NewCircle(meta Common, pageCount int, x, y, side float64) (*Circle, error) {
	if err := meta.validate(pageCount); err != nil {
		return nil, err
	}
	if side < 0 {
		return nil, fmt.Errorf("annotation: negative circle side %g", side)
	}
	return &Circle{Common: meta, X: x, Y: y, W: side, H: side, Radius: side / 2}, nil
}

// NewText validates and builds a committed text annotation. The text must be
// non-empty after trimming and the font size positive.
func NewText(meta Common, pageCount int, x, y float64, value string, fontSize float64) (*Text, error) {
	if err := meta.validate(pageCount); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, fmt.Errorf("annotation: empty text")
	}
	if fontSize <= 0 {
		return nil, fmt.Errorf("annotation: non-positive font size %g", fontSize)
	}
	if meta.Drawing {
		return nil, fmt.Errorf("annotation: text cannot be provisional")
	}
	return &Text{Common: meta, X: x, Y: y, Value: trimmed, FontSize: fontSize}, nil
}

// SetBox updates the rectangle's geometry during a drag.
func (r *Rect) SetBox(x, y, w, h float64) {
	r.X, r.Y, r.W, r.H = x, y, w, h
}

// SetBox updates the circle's bounding box during a drag, keeping it square.
func (c *Circle) SetBox(x, y, side float64) {
	c.X, c.Y = x, y
	c.W, c.H = side, side
	c.Radius = side / 2
}
