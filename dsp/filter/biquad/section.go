package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
//
// The transposed form carries only two delay registers and tolerates live
// coefficient swaps between samples: the registers accumulate output-side
// state rather than raw input/output history, so replacing the coefficients
// mid-stream never references stale cross-terms.
type Section struct {
	Coefficients

	d0, d1 float64
}

type processBlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

var (
	processBlockImpl     processBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients replaces the section's coefficients without touching the
// delay registers. The next processed sample uses the new coefficients in
// full. Leaving the registers intact is what keeps a live parameter change
// click-free: the filter state continues smoothly, only the response changes.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one input sample and returns the output.
//
// Any finite input and any previously assigned stable coefficient set
// produce a finite output. Intentionally unstable coefficients (poles
// outside the unit circle) grow without bound; bounding the design inputs
// is a caller responsibility.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	s.d0, s.d1 = processBlockImpl(s.Coefficients, s.d0, s.d1, buf)
}

// initProcessBlockKernel selects the block kernel once per process.
// ForceGeneric pins the straight scalar loop for testing; everything else
// gets the unrolled variant.
func initProcessBlockKernel() {
	features := cpu.DetectFeatures()
	if features.ForceGeneric {
		processBlockImpl = processBlockScalar
		return
	}

	processBlockImpl = processBlockUnrolled2
}

func processBlockScalar(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}

	return d0, d1
}

// processBlockUnrolled2 is a manual 2x-unrolled implementation of the block
// loop that reduces loop overhead and improves ILP.
func processBlockUnrolled2(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0

	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		dst[i] = y
	}
}

// Reset clears the delay line to zero. Coefficients are left untouched.
//
// Reset is for (re)initialization only; clearing the registers while a
// signal is flowing produces an audible discontinuity, so it must never
// be tied to ordinary parameter updates.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
