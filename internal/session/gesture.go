package session

import (
	"math"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

// The gesture state machine: Idle, Drawing and TextEntry.
//
//	Idle --pointer down (rect/circle)--> Drawing (provisional shape appended)
//	Drawing --pointer move--> Drawing   (geometry recomputed from anchor)
//	Drawing --pointer up / leave--> Idle (commit, or discard if zero size)
//	Idle --pointer down (text)--> TextEntry
//	TextEntry --commit/cancel--> Idle
//
// The select tool is deliberately inert: its pointer events are reserved for
// future pan/select behavior.

// PointerDown starts a gesture at a display-space position. With a shape tool
// it appends a zero-size provisional annotation so the shape renders from the
// first frame of the drag; with the text tool it opens text entry.
func (s *Session) PointerDown(p models.Point) {
	if s.state != stateIdle {
		return
	}

	switch s.tool {
	case ToolRect:
		r, err := annotation.NewRect(s.nextMeta(true), len(s.pageDims), p.X, p.Y, 0, 0)
		if err != nil {
			s.log.Error("failed to start rectangle: %v", err)
			return
		}
		s.beginDrag(p, r)
	case ToolCircle:
		c, err := annotation.NewCircle(s.nextMeta(true), len(s.pageDims), p.X, p.Y, 0)
		if err != nil {
			s.log.Error("failed to start circle: %v", err)
			return
		}
		s.beginDrag(p, c)
	case ToolText:
		s.state = stateTextEntry
		s.textPos = p
	case ToolSelect:
		// reserved
	}
}

func (s *Session) beginDrag(p models.Point, a annotation.Annotation) {
	s.anchor = p
	s.active = a
	s.annotations = append(s.annotations, a)
	s.state = stateDrawing
	s.invalidate()
}

// PointerMove updates the provisional shape's geometry from the anchor and
// the current pointer position.
func (s *Session) PointerMove(p models.Point) {
	if s.state != stateDrawing {
		return
	}
	s.updateActive(p)
	s.invalidate()
}

// PointerUp finalizes the drag at the release position: the provisional
// shape is committed, or deleted if the drag covered no distance.
func (s *Session) PointerUp(p models.Point) {
	if s.state != stateDrawing {
		return
	}
	s.updateActive(p)
	s.finishDrag()
}

// PointerLeave ends the drag exactly like PointerUp at the last known
// position; drags do not continue outside the canvas.
func (s *Session) PointerLeave() {
	if s.state != stateDrawing {
		return
	}
	s.finishDrag()
}

func (s *Session) updateActive(p models.Point) {
	dx := p.X - s.anchor.X
	dy := p.Y - s.anchor.Y

	switch t := s.active.(type) {
	case *annotation.Rect:
		t.SetBox(
			math.Min(s.anchor.X, p.X),
			math.Min(s.anchor.Y, p.Y),
			math.Abs(dx),
			math.Abs(dy),
		)
	case *annotation.Circle:
		// Circles are forced square regardless of drag shape.
		side := math.Max(math.Abs(dx), math.Abs(dy))
		t.SetBox(
			math.Min(s.anchor.X, p.X),
			math.Min(s.anchor.Y, p.Y),
			side,
		)
	}
}

func (s *Session) finishDrag() {
	if s.zeroSize(s.active) {
		// An accidental click, not a drag.
		s.removeAnnotation(s.active)
	} else {
		s.active.Meta().Drawing = false
	}
	s.active = nil
	s.state = stateIdle
	s.invalidate()
}

func (s *Session) zeroSize(a annotation.Annotation) bool {
	switch t := a.(type) {
	case *annotation.Rect:
		return t.W == 0 || t.H == 0
	case *annotation.Circle:
		return t.W == 0
	}
	return false
}

// CommitText turns the pending text entry into a committed annotation.
// Empty (after trimming) text discards the entry instead, identical to
// CancelText.
func (s *Session) CommitText(text string) {
	if s.state != stateTextEntry {
		return
	}
	s.state = stateIdle

	t, err := annotation.NewText(s.nextMeta(false), len(s.pageDims), s.textPos.X, s.textPos.Y, text, s.fontSize)
	if err != nil {
		// Empty text is a cancel, not an error.
		s.log.Debug("text entry discarded: %v", err)
		return
	}
	s.annotations = append(s.annotations, t)
	s.invalidate()
}

// CancelText discards the pending text entry without creating anything.
func (s *Session) CancelText() {
	if s.state != stateTextEntry {
		return
	}
	s.state = stateIdle
}

// abortGesture abandons any gesture in progress, deleting a provisional
// shape. Tool switches and page changes call it so no half-drawn annotation
// survives.
func (s *Session) abortGesture() {
	switch s.state {
	case stateDrawing:
		s.removeAnnotation(s.active)
		s.active = nil
		s.state = stateIdle
		// The provisional shape is already painted; request a frame
		// without it.
		s.invalidate()
	case stateTextEntry:
		s.state = stateIdle
	}
}

func (s *Session) removeAnnotation(target annotation.Annotation) {
	for i, a := range s.annotations {
		if a == target {
			s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
			return
		}
	}
}
