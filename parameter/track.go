package parameter

// Track geometry in world units, independent of the terminal size
const (
	TrackWidth  = 500.0
	TrackHeight = 700.0

	// CarWidth and CarHeight are shared by player and enemy cars
	CarWidth  = 50.0
	CarHeight = 100.0

	// PlayerBottomOffset places the player centre this far above the track bottom
	PlayerBottomOffset = 120.0

	// PlayerStartLane is the lane index a new player occupies
	PlayerStartLane = 1
)

// LaneCenters holds the horizontal centre of each lane, left to right
var LaneCenters = [...]float64{75, 175, 275, 375}

// LaneCount is the number of lanes on the track
const LaneCount = len(LaneCenters)
