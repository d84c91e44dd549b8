package design

import (
	"math"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/filter/biquad"
)

// DefaultQ is the Butterworth (no resonance) quality factor.
const DefaultQ = 1 / math.Sqrt2

// MaxQ bounds the quality factor accepted by the lowpass design. The knob
// mapping in dsp/effects tops out near q = 11.3 (+20 dB); the extra headroom
// keeps direct callers safe without letting the pole pair reach the unit
// circle.
const MaxQ = 40.0

const (
	minQ = 1e-3

	// Warped-cutoff bounds. tan(pi*fc/fs) is positive and finite over the
	// usable range (0, fs/2); inputs at or past the boundaries are clamped
	// so the coefficient math can never produce NaN or Inf.
	minWarpedCutoff = 1e-6
	maxWarpedCutoff = 1e3
)

// LowpassPrewarped designs a second-order lowpass from an already
// tangent-warped cutoff k = tan(pi*fc/sampleRate) and quality factor q.
//
// This is the bilinear-transform second-order lowpass prototype:
//
//	        k^2 (1 + 2z^-1 + z^-2)
//	H(z) = ------------------------------------------------------
//	        (1 + k/q + k^2) + 2(k^2 - 1)z^-1 + (1 - k/q + k^2)z^-2
//
// normalized so a0 = 1. The feedback pair encodes the pole locations: larger
// q moves the poles toward the unit circle and raises the passband peak near
// cutoff.
//
// Out-of-domain inputs (k <= 0, q <= 0, q > MaxQ) are clamped to the nearest
// valid boundary; the returned coefficients are always finite and stable.
// Pure function, safe to call from any execution context.
func LowpassPrewarped(k, q float64) biquad.Coefficients {
	k = core.Clamp(k, minWarpedCutoff, maxWarpedCutoff)
	q = core.Clamp(q, minQ, MaxQ)

	kSq := k * k
	kByQ := k / q
	norm := 1 / (1 + kByQ + kSq)

	b0 := kSq * norm

	return biquad.Coefficients{
		B0: b0,
		B1: 2 * b0,
		B2: b0,
		A1: 2 * (kSq - 1) * norm,
		A2: (1 - kByQ + kSq) * norm,
	}
}

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q,
// prewarping the cutoff through the tangent transform before calling
// [LowpassPrewarped].
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	return LowpassPrewarped(Prewarp(freq, sampleRate), q)
}

// Prewarp computes the bilinear-transform frequency warping factor
// tan(pi*freq/sampleRate). The frequency is clamped into (0, sampleRate/2)
// so the tangent stays positive and finite.
func Prewarp(freq, sampleRate float64) float64 {
	if sampleRate <= 0 {
		sampleRate = 48000
	}

	nyquist := sampleRate / 2
	freq = core.Clamp(freq, nyquist*1e-6, nyquist*0.9999)

	return math.Tan(math.Pi * freq / sampleRate)
}
