package parameter

import "time"

// Audio
const (
	// AudioSampleRate for the speaker
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioCrashDuration and AudioCrashFreq shape the crash buzz
	AudioCrashDuration = 350 * time.Millisecond
	AudioCrashFreq     = 90.0

	// AudioDodgeDuration and AudioDodgeFreq shape the dodge blip
	AudioDodgeDuration = 60 * time.Millisecond
	AudioDodgeFreq     = 880.0

	// AudioVolume is the master gain in beep's exponential volume scale (base 2)
	AudioVolume = -1.5
)
