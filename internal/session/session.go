// Package session owns the live state of one annotated document: the ordered
// annotation collection, the active tool, color, font size, page and zoom,
// and the pointer-driven gesture state machine that creates annotations.
//
// All mutations are synchronous; the only asynchronous work is the page
// render, which the session delegates to a render view after every relevant
// change.
package session

import (
	"fmt"
	"strings"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
	"github.com/kpauljoseph/pdfmarkup/internal/render"
	"github.com/kpauljoseph/pdfmarkup/pkg/logger"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
	"github.com/kpauljoseph/pdfmarkup/pkg/utils"
)

// Tool selects what pointer gestures on the page do.
type Tool int

const (
	ToolSelect Tool = iota
	ToolRect
	ToolCircle
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolRect:
		return "rect"
	case ToolCircle:
		return "circle"
	case ToolText:
		return "text"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool maps a tool name to its Tool value.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select":
		return ToolSelect, nil
	case "rect", "rectangle":
		return ToolRect, nil
	case "circle":
		return ToolCircle, nil
	case "text":
		return ToolText, nil
	}
	return ToolSelect, fmt.Errorf("unknown tool %q", s)
}

// Zoom bounds and step shared by explicit zooming and auto-fit resolution.
const (
	MinScale = 0.1
	MaxScale = 5.0
	ZoomStep = 1.25
)

// FontSizes is the discrete set offered for text annotations.
var FontSizes = []float64{10, 12, 14, 16, 20, 24, 30, 36, 48}

// Defaults applied to a fresh session.
const (
	DefaultFontSize = 14.0
	DefaultScale    = 1.0
)

var DefaultColor = models.RGB{R: 224, G: 49, B: 49}

type gestureState int

const (
	stateIdle gestureState = iota
	stateDrawing
	stateTextEntry
)

// Session is the document session for one loaded PDF. It is discarded
// wholesale, annotations included, when a new document is loaded.
type Session struct {
	log      *logger.Logger
	pageDims []models.PageDimensions
	view     *render.View // optional; nil in headless use

	annotations []annotation.Annotation // insertion order across all pages

	page     int
	tool     Tool
	color    models.RGB
	fontSize float64

	scale    float64
	fitMode  bool
	viewport models.PageDimensions // available size for auto-fit

	state   gestureState
	anchor  models.Point
	active  annotation.Annotation // the provisional shape being dragged
	textPos models.Point

	currentErr string
}

// Option configures a Session during creation.
type Option func(*Session)

// WithView attaches a render view that is invalidated on every change.
func WithView(v *render.View) Option { return func(s *Session) { s.view = v } }

// WithColor sets the initial drawing color.
func WithColor(c models.RGB) Option { return func(s *Session) { s.color = c } }

// WithFontSize sets the initial text font size. Sizes outside FontSizes are
// ignored; the session keeps DefaultFontSize and logs the fallback.
func WithFontSize(size float64) Option {
	return func(s *Session) {
		if !ValidFontSize(size) {
			s.log.Error("ignoring font size %g, not in %v; keeping %g", size, FontSizes, s.fontSize)
			return
		}
		s.fontSize = size
	}
}

// New creates a session over a document with the given per-page
// document-space dimensions.
func New(pageDims []models.PageDimensions, log *logger.Logger, options ...Option) (*Session, error) {
	if len(pageDims) == 0 {
		return nil, fmt.Errorf("session: document has no pages")
	}

	s := &Session{
		log:      log,
		pageDims: pageDims,
		page:     1,
		tool:     ToolSelect,
		color:    DefaultColor,
		fontSize: DefaultFontSize,
		scale:    DefaultScale,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func (s *Session) PageCount() int { return len(s.pageDims) }
func (s *Session) Page() int      { return s.page }
func (s *Session) Tool() Tool     { return s.tool }

func (s *Session) Color() models.RGB { return s.color }
func (s *Session) FontSize() float64 { return s.fontSize }

// PageSize returns the document-space dimensions of a 1-based page.
func (s *Session) PageSize(page int) (models.PageDimensions, error) {
	if page < 1 || page > len(s.pageDims) {
		return models.PageDimensions{}, fmt.Errorf("session: page %d out of range [1,%d]", page, len(s.pageDims))
	}
	return s.pageDims[page-1], nil
}

// Annotations returns a snapshot of the full collection in insertion order.
func (s *Session) Annotations() []annotation.Annotation {
	out := make([]annotation.Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// PageAnnotations returns the annotations belonging to one page, in
// collection order.
func (s *Session) PageAnnotations(page int) []annotation.Annotation {
	var out []annotation.Annotation
	for _, a := range s.annotations {
		if a.Meta().Page == page {
			out = append(out, a)
		}
	}
	return out
}

func (s *Session) SetTool(t Tool) {
	s.abortGesture()
	s.tool = t
}

func (s *Session) SetColor(c models.RGB) {
	s.color = c
}

// SetFontSize accepts only sizes from the discrete FontSizes set.
func (s *Session) SetFontSize(size float64) error {
	if !ValidFontSize(size) {
		return fmt.Errorf("session: font size %g not in %v", size, FontSizes)
	}
	s.fontSize = size
	return nil
}

// ValidFontSize reports whether size is one of the discrete FontSizes.
func ValidFontSize(size float64) bool {
	for _, v := range FontSizes {
		if v == size {
			return true
		}
	}
	return false
}

// GoToPage switches the displayed page. Annotations on other pages are left
// untouched; any in-progress gesture is abandoned.
func (s *Session) GoToPage(page int) error {
	if page < 1 || page > len(s.pageDims) {
		return fmt.Errorf("session: page %d out of range [1,%d]", page, len(s.pageDims))
	}
	s.abortGesture()
	s.page = page
	s.invalidate()
	return nil
}

// ClearPage removes every annotation belonging to the current page and
// nothing else.
func (s *Session) ClearPage() {
	s.abortGesture()
	kept := s.annotations[:0]
	for _, a := range s.annotations {
		if a.Meta().Page != s.page {
			kept = append(kept, a)
		}
	}
	s.annotations = kept
	s.invalidate()
}

// ReportError replaces the single current user-visible error message.
func (s *Session) ReportError(msg string) {
	s.currentErr = msg
	if msg != "" {
		s.log.Error("%s", msg)
	}
}

// CurrentError returns the current user-visible error, if any.
func (s *Session) CurrentError() string { return s.currentErr }

func (s *Session) invalidate() {
	if s.view == nil {
		return
	}
	s.view.Request(s.page, s.Scale(), s.PageAnnotations(s.page))
}

func (s *Session) nextMeta(drawing bool) annotation.Common {
	return annotation.Common{
		ID:      utils.NewID(),
		Page:    s.page,
		Color:   s.color,
		Scale:   s.Scale(),
		Drawing: drawing,
	}
}
