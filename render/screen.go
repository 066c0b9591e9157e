// Package render draws simulation snapshots onto a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
)

// HUD carries the status state the simulation does not own
type HUD struct {
	Mode       race.Mode
	Generation int
	Muted      bool
}

// Text returns the status line: score for a single car, generation and alive count for training
func (h HUD) Text(snap race.Snapshot) string {
	var text string
	if h.Mode == race.ModeTraining {
		text = fmt.Sprintf("Gen: %d  Alive: %d", h.Generation, snap.Alive)
	} else {
		text = fmt.Sprintf("Score: %d", snap.Score)
	}
	text += fmt.Sprintf("  Speed: %.2f", snap.Speed)
	if h.Muted {
		text += "  [muted]"
	}
	return text
}

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleEdge   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleMark   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// Screen renders the track, cars and HUD
type Screen struct {
	screen tcell.Screen
	track  *race.Track
	view   Viewport
}

// NewScreen wraps an initialized tcell screen
func NewScreen(screen tcell.Screen, track *race.Track) *Screen {
	s := &Screen{screen: screen, track: track}
	s.Resize()
	return s
}

// Resize recomputes the viewport after a terminal resize
func (s *Screen) Resize() {
	w, h := s.screen.Size()
	s.view = NewViewport(s.track, w, h)
	s.screen.Sync()
}

// Viewport returns the current world to cell mapping
func (s *Screen) Viewport() Viewport {
	return s.view
}

// Draw renders one frame
func (s *Screen) Draw(snap race.Snapshot, hud HUD) {
	s.screen.Clear()

	s.drawText(0, 0, hud.Text(snap), styleHUD)
	s.drawTrack(snap.Scroll)

	for _, e := range snap.Enemies {
		s.fill(e, parameter.EnemyChar, styleEnemy)
	}
	for _, p := range snap.Players {
		s.fill(p, parameter.PlayerChar, stylePlayer)
	}

	s.screen.Show()
}

// Banner draws a centred message over the current frame
func (s *Screen) Banner(msg string) {
	w, h := s.screen.Size()
	text := " " + msg + " "
	s.drawText(max((w-len([]rune(text)))/2, 0), h/2, text, styleBanner)
	s.screen.Show()
}

func (s *Screen) drawTrack(scroll float64) {
	v := s.view
	left, right := v.OffsetX-1, v.OffsetX+v.Cols
	for row := v.OffsetY; row < v.OffsetY+v.Rows; row++ {
		s.screen.SetContent(left, row, parameter.EdgeChar, nil, styleEdge)
		s.screen.SetContent(right, row, parameter.EdgeChar, nil, styleEdge)
	}

	// Dashed boundaries between lanes, moving down with the scroll offset
	spacing := parameter.LaneMarkSpacing
	rowHeight := s.track.Height / float64(v.Rows)
	phase := math.Mod(scroll, spacing)
	for i := 1; i < len(s.track.Lanes); i++ {
		col, _ := v.Cell((s.track.Lanes[i-1]+s.track.Lanes[i])/2, 0)
		for y := phase - spacing; y < s.track.Height; y += spacing {
			for dy := 0.0; dy < spacing/2; dy += rowHeight {
				if row, ok := v.RowOf(y + dy); ok {
					s.screen.SetContent(col, row, parameter.MarkChar, nil, styleMark)
				}
			}
		}
	}
}

func (s *Screen) fill(a race.ActorView, ch rune, style tcell.Style) {
	x0, y0, x1, y1 := s.view.RectCells(a.Box)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
