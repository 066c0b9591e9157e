package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/lanerace/parameter"
)

// CrashSound is a decaying harmonic buzz
func CrashSound(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(parameter.AudioCrashDuration), NewBuzzGenerator(sr, parameter.AudioCrashFreq, 6))
}

// DodgeSound is a quiet sine blip, nil if the tone cannot be generated
func DodgeSound(sr beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(sr, parameter.AudioDodgeFreq)
	if err != nil {
		return nil
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(parameter.AudioDodgeDuration), sine),
		Base:     2,
		Volume:   -3,
	}
}

// BuzzGenerator generates a low-pitch buzz with exponential decay
type BuzzGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // per second
	pos   int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq, decay float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:    sr,
		freq:  freq,
		decay: decay,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus two harmonics
		sample := 0.5 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.125 * math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms attack, then decay
		envelope := math.Min(t/0.02, 1.0) * math.Exp(-t*g.decay)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
