package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	shimmerInterval = 100 * time.Millisecond
	shimmerCycle    = 18 // ticks for one sweep across the text
	shimmerPause    = 5  // ticks between sweeps
	shimmerWidth    = 0.25
)

// shimmerTickMsg advances the highlight sweep
type shimmerTickMsg struct{}

// Shimmer sweeps a highlight across the selected job's name. It is shared
// by pointer so that copies of the model advance the same sweep.
type Shimmer struct {
	Enabled bool

	base      colorful.Color
	highlight colorful.Color
	static    lipgloss.Style
	center    float64
	paused    int
}

// NewShimmer blends from the palette's secondary text color to its bright
// accent. Palettes that are not hex fall back to a static highlight.
func NewShimmer(p Palette, enabled bool) *Shimmer {
	s := &Shimmer{
		Enabled: enabled,
		static:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentBright)),
	}
	base, err1 := colorful.Hex(p.SecondaryText)
	highlight, err2 := colorful.Hex(p.AccentBright)
	if err1 != nil || err2 != nil {
		s.Enabled = false
		return s
	}
	s.base, s.highlight = base, highlight
	return s
}

// Tick schedules the next frame, or nothing when disabled
func (s *Shimmer) Tick() tea.Cmd {
	if !s.Enabled {
		return nil
	}
	return tea.Tick(shimmerInterval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Advance moves the sweep one frame along text of the given rune length
func (s *Shimmer) Advance(textLen int) {
	if !s.Enabled || textLen == 0 {
		return
	}
	if s.paused > 0 {
		s.paused--
		if s.paused == 0 {
			s.center = -float64(textLen) * shimmerWidth
		}
		return
	}

	total := float64(textLen) * (1 + 2*shimmerWidth)
	s.center += total / shimmerCycle
	if s.center >= float64(textLen)*(1+shimmerWidth) {
		s.paused = shimmerPause
	}
}

// Reset restarts the sweep, e.g. when the selection changes
func (s *Shimmer) Reset() {
	s.center = 0
	s.paused = 0
}

// Render colors each rune by its distance from the sweep center
func (s *Shimmer) Render(text string) string {
	if !s.Enabled {
		return s.static.Render(text)
	}

	runes := []rune(text)
	sigma := math.Max(shimmerWidth*float64(len(runes))/2, 1)

	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.center
		weight := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		c := s.base.BlendRgb(s.highlight, weight).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}
