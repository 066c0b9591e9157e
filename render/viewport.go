package render

import (
	"math"

	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
	"github.com/lixenwraith/lanerace/vmath"
)

// Viewport maps track world units onto terminal cells
// Cells are assumed twice as tall as wide, the track keeps its aspect ratio when it fits
type Viewport struct {
	// OffsetX and OffsetY are the cell of the track's top-left corner
	OffsetX, OffsetY int
	// Cols and Rows is the cell size of the track area
	Cols, Rows int

	scaleX, scaleY float64 // cells per world unit
}

// NewViewport fits the track below the HUD rows of a width x height terminal
func NewViewport(track *race.Track, width, height int) Viewport {
	rows := max(height-parameter.HUDRows, 1)
	avail := max(width-2, 1) // edge columns

	cols := int(2 * track.Width * float64(rows) / track.Height)
	cols = max(min(cols, avail), 1)

	return Viewport{
		OffsetX: (width - cols) / 2,
		OffsetY: parameter.HUDRows,
		Cols:    cols,
		Rows:    rows,
		scaleX:  float64(cols) / track.Width,
		scaleY:  float64(rows) / track.Height,
	}
}

// Cell returns the terminal cell of a world point, not clipped
func (v Viewport) Cell(x, y float64) (col, row int) {
	return v.OffsetX + int(math.Floor(x*v.scaleX)), v.OffsetY + int(math.Floor(y*v.scaleY))
}

// RectCells returns the half-open cell span [x0,x1) x [y0,y1) covered by r, clipped to the track area
// A rect overlapping the track always covers at least one cell
func (v Viewport) RectCells(r vmath.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X * v.scaleX))
	x1 = int(math.Ceil(r.Right() * v.scaleX))
	y0 = int(math.Floor(r.Y * v.scaleY))
	y1 = int(math.Ceil(r.Bottom() * v.scaleY))

	x0, x1 = clipSpan(x0, x1, v.Cols)
	y0, y1 = clipSpan(y0, y1, v.Rows)

	return v.OffsetX + x0, v.OffsetY + y0, v.OffsetX + x1, v.OffsetY + y1
}

// RowOf returns the terminal row of a world y, false when it is off the track
func (v Viewport) RowOf(y float64) (int, bool) {
	row := int(math.Floor(y * v.scaleY))
	if row < 0 || row >= v.Rows {
		return 0, false
	}
	return v.OffsetY + row, true
}

// clipSpan clips [lo,hi) to [0,limit); an empty result collapses to lo == hi
func clipSpan(lo, hi, limit int) (int, int) {
	lo = max(lo, 0)
	hi = min(hi, limit)
	if hi <= lo {
		if lo >= limit || hi <= 0 {
			return lo, lo
		}
		hi = lo + 1
	}
	return lo, hi
}
