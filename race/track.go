// Package race implements the lane-based dodge simulation: track, actors, enemy spawning,
// sensor extraction and the fixed-order tick function.
// It performs no I/O and owns no goroutines; a loop driver calls Step once per tick.
package race

import (
	"fmt"

	"github.com/lixenwraith/lanerace/parameter"
)

// Track defines the lane table and the visible play area in world units
type Track struct {
	Width, Height float64
	Lanes         []float64

	CarWidth, CarHeight float64

	// PlayerY is the fixed vertical centre of player cars
	PlayerY float64
}

// DefaultTrack returns the standard four-lane track
func DefaultTrack() *Track {
	lanes := make([]float64, parameter.LaneCount)
	copy(lanes, parameter.LaneCenters[:])

	return &Track{
		Width:     parameter.TrackWidth,
		Height:    parameter.TrackHeight,
		Lanes:     lanes,
		CarWidth:  parameter.CarWidth,
		CarHeight: parameter.CarHeight,
		PlayerY:   parameter.TrackHeight - parameter.PlayerBottomOffset,
	}
}

// LaneCount returns the number of lanes
func (t *Track) LaneCount() int {
	return len(t.Lanes)
}

// ValidLane reports whether lane indexes the lane table
func (t *Track) ValidLane(lane int) bool {
	return lane >= 0 && lane < len(t.Lanes)
}

// LaneX returns the centre x of a lane, panics on an invalid index
func (t *Track) LaneX(lane int) float64 {
	if !t.ValidLane(lane) {
		panic(fmt.Sprintf("race: lane %d outside [0,%d]", lane, len(t.Lanes)-1))
	}
	return t.Lanes[lane]
}
