// Package audio plays short synthesized cues for race events
// Audio is optional: every operation is a no-op until Initialize succeeds
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager manages the game's sound cues
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: parameter.AudioVolume},
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// SetMuted silences output without dropping queued cues
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.master.Silent = muted
}

// Muted reports whether output is silenced
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.master.Silent
}

// PlayCrash plays the low collision buzz
func (sm *SoundManager) PlayCrash() {
	sm.play(CrashSound(sampleRate))
}

// PlayDodge plays the short blip of a dodged car
func (sm *SoundManager) PlayDodge() {
	sm.play(DodgeSound(sampleRate))
}

// Observe plays the cues of one simulation step
func (sm *SoundManager) Observe(res race.StepResult) {
	if len(res.Crashed) > 0 {
		sm.PlayCrash()
	}
	if res.Culled > 0 {
		sm.PlayDodge()
	}
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
