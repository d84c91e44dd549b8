package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/filter/biquad"
)

// Errors returned by response measurement functions.
var (
	ErrNilSection        = errors.New("response: section must not be nil")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two >= 16")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// Point is one measured frequency-response bin.
type Point struct {
	FreqHz      float64
	MagnitudeDB float64
}

// Measure computes the empirical magnitude response of a biquad section by
// transforming fftSize samples of its impulse response. It returns one point
// per bin from DC up to and including Nyquist.
//
// The section's delay state is saved and restored, so a live filter can be
// measured without disturbing it. The impulse response must have decayed
// within fftSize samples for the result to be accurate; for the lowpass
// designs in this module a few thousand samples are ample.
func Measure(s *biquad.Section, fftSize int, sampleRate float64) ([]Point, error) {
	if s == nil {
		return nil, ErrNilSection
	}
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, ErrInvalidFFTSize
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	ir := s.ImpulseResponse(fftSize)

	timeDomain := make([]complex128, fftSize)
	for i, v := range ir {
		timeDomain[i] = complex(v, 0)
	}

	freqDomain := make([]complex128, fftSize)
	if err := plan.Forward(freqDomain, timeDomain); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(freqDomain[k])
		im[k] = imag(freqDomain[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	points := make([]Point, bins)
	binWidth := sampleRate / float64(fftSize)
	for k := range points {
		points[k] = Point{
			FreqHz:      float64(k) * binWidth,
			MagnitudeDB: core.LinearToDB(mag[k]),
		}
	}

	return points, nil
}

// Peak returns the point with the highest magnitude. Returns a zero Point
// for empty input.
func Peak(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	best := points[0]
	for _, p := range points[1:] {
		if p.MagnitudeDB > best.MagnitudeDB {
			best = p
		}
	}
	return best
}

// At returns the measured magnitude in dB at the bin closest to freqHz.
// Returns NaN for empty input.
func At(points []Point, freqHz float64) float64 {
	if len(points) == 0 {
		return math.NaN()
	}

	best := points[0]
	dist := math.Abs(best.FreqHz - freqHz)
	for _, p := range points[1:] {
		if d := math.Abs(p.FreqHz - freqHz); d < dist {
			best, dist = p, d
		}
	}
	return best.MagnitudeDB
}
