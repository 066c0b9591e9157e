package race

import (
	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/vmath"
)

// Sensor vector layout
const (
	SensorLane = iota
	SensorFront
	SensorLeft
	SensorRight
	SensorSpeed
)

// Sensors is the fixed-size world summary fed to a controller, every component in [0,1]
type Sensors [parameter.SensorCount]float64

// Slice returns the sensors as a slice for decision functions
func (s Sensors) Slice() []float64 {
	out := make([]float64, len(s))
	copy(out, s[:])
	return out
}

// Sense extracts the sensor vector of one player
// Clearance is the vertical gap to the closest enemy at or ahead of the player in a lane,
// normalised by track height; a lane with no threat, or no lane at all, reads 1
func Sense(track *Track, p *Player, enemies []*Enemy, speed float64) Sensors {
	front, left, right := track.Height, track.Height, track.Height

	for _, e := range enemies {
		if e.Y > p.Y {
			continue
		}
		dy := p.Y - e.Y
		switch e.Lane {
		case p.Lane:
			front = min(front, dy)
		case p.Lane - 1:
			left = min(left, dy)
		case p.Lane + 1:
			right = min(right, dy)
		}
	}

	var s Sensors
	if n := track.LaneCount(); n > 1 {
		s[SensorLane] = float64(p.Lane) / float64(n-1)
	}
	s[SensorFront] = vmath.Clamp(front/track.Height, 0, 1)
	s[SensorLeft] = vmath.Clamp(left/track.Height, 0, 1)
	s[SensorRight] = vmath.Clamp(right/track.Height, 0, 1)
	s[SensorSpeed] = vmath.Clamp(speed/parameter.SensorMaxSpeed, 0, 1)
	return s
}
