// Package script loads a YAML description of annotation gestures and replays
// it through a session's pointer API, driving the same state machine an
// interactive frontend would.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdfmarkup/internal/session"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

// Script is an ordered list of events applied to a fresh session.
type Script struct {
	Events []Event `yaml:"events"`
}

// Event is one scripted action. Which fields apply depends on Action:
//
//	rect, circle: from, to (display pixels), optionally page and color
//	text:         at, text, optionally page, color and font_size
//	goto-page:    page
//	zoom-in, zoom-out, zoom-fit, clear-page: no fields
type Event struct {
	Action   string        `yaml:"action"`
	Page     int           `yaml:"page,omitempty"`
	From     *models.Point `yaml:"from,omitempty"`
	To       *models.Point `yaml:"to,omitempty"`
	At       *models.Point `yaml:"at,omitempty"`
	Text     string        `yaml:"text,omitempty"`
	Color    string        `yaml:"color,omitempty"`
	FontSize float64       `yaml:"font_size,omitempty"`
}

// Load parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses script bytes.
func Parse(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return &sc, nil
}

// Apply replays every event against the session in order. The first invalid
// event aborts with an error naming its position.
func (sc *Script) Apply(s *session.Session) error {
	for i, ev := range sc.Events {
		if err := apply(s, ev); err != nil {
			return fmt.Errorf("script: event %d (%s): %w", i+1, ev.Action, err)
		}
	}
	return nil
}

func apply(s *session.Session, ev Event) error {
	if ev.Page > 0 {
		if err := s.GoToPage(ev.Page); err != nil {
			return err
		}
	}
	if ev.Color != "" {
		c, err := models.ParseHexColor(ev.Color)
		if err != nil {
			return err
		}
		s.SetColor(c)
	}

	switch ev.Action {
	case "rect", "circle":
		if ev.From == nil || ev.To == nil {
			return fmt.Errorf("needs from and to points")
		}
		tool := session.ToolRect
		if ev.Action == "circle" {
			tool = session.ToolCircle
		}
		s.SetTool(tool)
		s.PointerDown(*ev.From)
		s.PointerMove(*ev.To)
		s.PointerUp(*ev.To)
	case "text":
		if ev.At == nil {
			return fmt.Errorf("needs an at point")
		}
		if ev.FontSize != 0 {
			if err := s.SetFontSize(ev.FontSize); err != nil {
				return err
			}
		}
		s.SetTool(session.ToolText)
		s.PointerDown(*ev.At)
		s.CommitText(ev.Text)
	case "goto-page":
		if ev.Page == 0 {
			return fmt.Errorf("needs a page")
		}
		// handled above
	case "zoom-in":
		s.ZoomIn()
	case "zoom-out":
		s.ZoomOut()
	case "zoom-fit":
		s.ZoomFit()
	case "clear-page":
		s.ClearPage()
	default:
		return fmt.Errorf("unknown action")
	}
	return nil
}
