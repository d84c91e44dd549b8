// Package testutil provides deterministic signals and tolerance helpers for
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// StereoImpulse generates an interleaved stereo buffer of the given frame
// count with a unit impulse on the selected channel (0 = left, 1 = right)
// at the given frame.
func StereoImpulse(frames, frame, channel int) []float64 {
	out := make([]float64, 2*frames)
	if frame >= 0 && frame < frames && (channel == 0 || channel == 1) {
		out[2*frame+channel] = 1
	}
	return out
}
