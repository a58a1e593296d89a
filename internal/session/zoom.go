package session

import "math"

// Scale resolves the render scale currently in effect. In auto-fit mode it
// is recomputed from the viewport and the current page's size on every call,
// so viewport changes take effect on the next render.
func (s *Session) Scale() float64 {
	if s.fitMode {
		return s.fitScale()
	}
	return s.scale
}

// FitMode reports whether the scale is being resolved from the viewport.
func (s *Session) FitMode() bool { return s.fitMode }

// SetScale switches to an explicit scale, clamped to the zoom bounds.
func (s *Session) SetScale(scale float64) {
	s.scale = clampScale(scale)
	s.fitMode = false
	s.invalidate()
}

// ZoomIn grows the scale by one step, leaving auto-fit mode.
func (s *Session) ZoomIn() {
	s.scale = clampScale(s.Scale() * ZoomStep)
	s.fitMode = false
	s.invalidate()
}

// ZoomOut shrinks the scale by one step, leaving auto-fit mode.
func (s *Session) ZoomOut() {
	s.scale = clampScale(s.Scale() / ZoomStep)
	s.fitMode = false
	s.invalidate()
}

// ZoomFit switches to auto-fit: the scale follows the viewport until an
// explicit zoom step is taken.
func (s *Session) ZoomFit() {
	s.fitMode = true
	s.invalidate()
}

// SetViewport records the available display area used by auto-fit. In fit
// mode a resize triggers a re-render at the recomputed scale.
func (s *Session) SetViewport(width, height float64) {
	s.viewport.Width = width
	s.viewport.Height = height
	if s.fitMode {
		s.invalidate()
	}
}

func (s *Session) fitScale() float64 {
	dims := s.pageDims[s.page-1]
	if s.viewport.Width <= 0 || s.viewport.Height <= 0 || dims.Width <= 0 || dims.Height <= 0 {
		return DefaultScale
	}
	fit := math.Min(s.viewport.Width/dims.Width, s.viewport.Height/dims.Height)
	return clampScale(fit)
}

func clampScale(v float64) float64 {
	if v < MinScale {
		return MinScale
	}
	if v > MaxScale {
		return MaxScale
	}
	return v
}
