package parameter

import "time"

// Tick cadence
const (
	// TicksPerSecond is the nominal simulation rate the spawn interval is tuned for
	TicksPerSecond = 60

	// TickInterval is the frame period of the interactive loop driver
	TickInterval = time.Second / TicksPerSecond

	// DeltaScale multiplies enemy speed per tick; speeds are expressed in units per tick
	DeltaScale = 1.0
)

// Enemy spawning
const (
	// SpawnInterval is the number of ticks between two enemy spawns
	SpawnInterval = 60
)

// Speed ramp
const (
	// StartSpeed is the initial downward enemy speed and scroll rate, units per tick
	StartSpeed = 5.0

	// SpeedStepSingle is added to the speed per culled enemy when a human plays
	SpeedStepSingle = 0.1

	// SpeedStepTraining is added per culled enemy in training and test runs
	SpeedStepTraining = 0.05
)

// Sensors
const (
	// SensorCount is the length of the sensor vector fed to controllers
	SensorCount = 5

	// ActionCount is the number of discrete actions a decision function scores
	ActionCount = 3

	// SensorMaxSpeed normalises the speed sensor
	SensorMaxSpeed = 20.0
)
