package parameter

// Terminal input
const (
	// KeyHoldTicks is how long a key press counts as held; terminals report no release,
	// so one press steps one lane and auto-repeat keeps the key held
	KeyHoldTicks = 1
)

// Rendering
const (
	// HUDRows is the number of terminal rows reserved above the track
	HUDRows = 1

	// LaneMarkSpacing is the world-unit distance between dashed lane markings
	LaneMarkSpacing = 70.0

	// PlayerChar, EnemyChar and MarkChar draw the track
	PlayerChar = '█'
	EnemyChar  = '▓'
	MarkChar   = '┊'
	EdgeChar   = '║'
)
