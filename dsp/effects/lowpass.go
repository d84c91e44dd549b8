package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/filter/biquad"
	"github.com/cwbudde/algo-modfx/dsp/filter/design"
)

const (
	// cutoffOctaves spreads the cutoff control over 0.001..0.490 of the
	// sample rate: 2*log2(490)/0.999. At 48 kHz that is 48 Hz at control 0
	// and 23.52 kHz at control 0.999, just under Nyquist.
	cutoffOctaves = 8.9456

	minCutoffTurns = 0.001
	maxCutoffTurns = 0.49

	minResonance = 0.01
)

// Power-on defaults: cutoff just under Nyquist (the filter passes nearly
// everything) with a mild resonance.
const (
	DefaultCutoffTurns = 0.49
	DefaultResonance   = 1.4142
)

// CutoffControlToTurns maps a normalized cutoff control in [0, 1) to a
// cutoff expressed as a fraction of the sample rate. The mapping is
// exponential, one control step sweeps a fixed number of octaves.
func CutoffControlToTurns(v float64) float64 {
	v = core.Clamp(v, 0, 1)
	return core.Clamp(minCutoffTurns*math.Exp2(v*cutoffOctaves), minCutoffTurns, maxCutoffTurns)
}

// ResonanceControlToQ maps a normalized resonance control in [0, 1) to a
// quality factor. Control 0 is the Butterworth baseline 1/sqrt(2) (flat, no
// resonance peak); control 0.999 is close to 16x that, a peak slightly above
// +20 dB.
func ResonanceControlToQ(v float64) float64 {
	v = core.Clamp(v, 0, 1)
	return math.Exp2(v*4) * design.DefaultQ
}

// TwoPoleLowpassOption mutates two-pole lowpass construction parameters.
type TwoPoleLowpassOption func(*twoPoleLowpassConfig) error

type twoPoleLowpassConfig struct {
	cutoffTurns float64
	resonance   float64
}

func defaultTwoPoleLowpassConfig() twoPoleLowpassConfig {
	return twoPoleLowpassConfig{
		cutoffTurns: DefaultCutoffTurns,
		resonance:   DefaultResonance,
	}
}

// WithLowpassCutoffTurns sets the initial cutoff as a fraction of the sample
// rate, in [0.001, 0.49].
func WithLowpassCutoffTurns(turns float64) TwoPoleLowpassOption {
	return func(cfg *twoPoleLowpassConfig) error {
		if turns < minCutoffTurns || turns > maxCutoffTurns || math.IsNaN(turns) {
			return fmt.Errorf("lowpass cutoff must be in [%g, %g] of the sample rate: %f",
				minCutoffTurns, maxCutoffTurns, turns)
		}
		cfg.cutoffTurns = turns
		return nil
	}
}

// WithLowpassResonance sets the initial quality factor, in (0, design.MaxQ].
func WithLowpassResonance(q float64) TwoPoleLowpassOption {
	return func(cfg *twoPoleLowpassConfig) error {
		if q <= 0 || q > design.MaxQ || math.IsNaN(q) {
			return fmt.Errorf("lowpass resonance must be in (0, %g]: %f", design.MaxQ, q)
		}
		cfg.resonance = q
		return nil
	}
}

// TwoPoleLowpass applies an identical resonant two-pole lowpass to two
// interleaved stereo pairs (main and sub).
//
// Four independent biquad sections carry the channel state; all four always
// hold bit-identical coefficients, recomputed once per control change and
// broadcast at the next block boundary. Control setters only mark the
// coefficients dirty, so any number of control messages between blocks costs
// a single recomputation.
//
// The processing path never allocates, never locks and never resets filter
// state. The host must not invoke Process concurrently with the control
// setters for the same instance; with that non-overlap guarantee the dirty
// flag is a plain cross-call signal.
type TwoPoleLowpass struct {
	sampleRate float64

	cutoffTurns float64 // cutoff as a fraction of the sample rate
	resonance   float64
	dirty       bool

	mainL, mainR biquad.Section
	subL, subR   biquad.Section
}

// NewTwoPoleLowpass creates a two-pole lowpass with power-on defaults
// (cutoff at 0.49 of the sample rate, resonance 1.4142) and optional
// overrides. The initial coefficients are computed and assigned immediately.
func NewTwoPoleLowpass(sampleRate float64, opts ...TwoPoleLowpassOption) (*TwoPoleLowpass, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lowpass sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultTwoPoleLowpassConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	e := &TwoPoleLowpass{
		sampleRate:  sampleRate,
		cutoffTurns: cfg.cutoffTurns,
		resonance:   cfg.resonance,
	}
	e.RefreshCoefficients()

	return e, nil
}

// Reset zeroes the delay state of all four channel filters. Coefficients and
// control parameters are left untouched. Reset is for (re)initialization;
// it must never run as part of an ordinary parameter update.
func (e *TwoPoleLowpass) Reset() {
	e.mainL.Reset()
	e.mainR.Reset()
	e.subL.Reset()
	e.subR.Reset()
}

// SetCutoffControl updates the cutoff from a normalized control value in
// [0, 1) and marks the coefficients dirty. The new response takes effect at
// the next block boundary.
func (e *TwoPoleLowpass) SetCutoffControl(v float64) {
	e.cutoffTurns = CutoffControlToTurns(v)
	e.dirty = true
}

// SetResonanceControl updates the resonance from a normalized control value
// in [0, 1) and marks the coefficients dirty.
func (e *TwoPoleLowpass) SetResonanceControl(v float64) {
	e.resonance = ResonanceControlToQ(v)
	e.dirty = true
}

// SetCutoffTurns sets the cutoff directly as a fraction of the sample rate,
// clamped to [0.001, 0.49], and marks the coefficients dirty.
func (e *TwoPoleLowpass) SetCutoffTurns(turns float64) {
	e.cutoffTurns = core.Clamp(turns, minCutoffTurns, maxCutoffTurns)
	e.dirty = true
}

// SetResonance sets the quality factor directly, clamped to
// [0.01, design.MaxQ], and marks the coefficients dirty.
func (e *TwoPoleLowpass) SetResonance(q float64) {
	e.resonance = core.Clamp(q, minResonance, design.MaxQ)
	e.dirty = true
}

// CutoffTurns returns the current cutoff as a fraction of the sample rate.
func (e *TwoPoleLowpass) CutoffTurns() float64 { return e.cutoffTurns }

// CutoffHz returns the current cutoff frequency in Hz.
func (e *TwoPoleLowpass) CutoffHz() float64 { return e.cutoffTurns * e.sampleRate }

// Resonance returns the current quality factor.
func (e *TwoPoleLowpass) Resonance() float64 { return e.resonance }

// Coefficients returns the coefficient set currently shared by all four
// channel filters.
func (e *TwoPoleLowpass) Coefficients() biquad.Coefficients {
	return e.mainL.Coefficients
}

// RefreshCoefficients recomputes the lowpass design from the current
// parameters and assigns the identical result to all four channel filters.
// Process calls this automatically at the block boundary when a control has
// changed; it is exported for hosts that need the new response immediately
// (initialization, offline rendering).
func (e *TwoPoleLowpass) RefreshCoefficients() {
	c := design.LowpassPrewarped(math.Tan(math.Pi*e.cutoffTurns), e.resonance)

	e.mainL.SetCoefficients(c)
	e.mainR.SetCoefficients(c)
	e.subL.SetCoefficients(c)
	e.subR.SetCoefficients(c)
	e.dirty = false
}

// Process filters frames interleaved stereo pairs from mainIn into mainOut
// and from subIn into subOut. The sub pair may be nil when the host provides
// no sub timbre. A pending control change is applied once at the start of
// the block, before the first sample.
//
// Samples are processed strictly in order with no drops or duplicates. The
// call allocates nothing and returns the number of frames actually
// processed, which is less than frames only when a buffer is too short.
func (e *TwoPoleLowpass) Process(mainIn, mainOut, subIn, subOut []float64, frames int) int {
	if e.dirty {
		e.RefreshCoefficients()
	}

	frames = boundFrames(frames, mainIn, mainOut)

	hasSub := subIn != nil && subOut != nil
	if hasSub {
		frames = boundFrames(frames, subIn, subOut)
	}

	for i := 0; i < frames; i++ {
		l, r := 2*i, 2*i+1
		mainOut[l] = e.mainL.ProcessSample(mainIn[l])
		mainOut[r] = e.mainR.ProcessSample(mainIn[r])
	}

	if hasSub {
		for i := 0; i < frames; i++ {
			l, r := 2*i, 2*i+1
			subOut[l] = e.subL.ProcessSample(subIn[l])
			subOut[r] = e.subR.ProcessSample(subIn[r])
		}
	}

	// Long silent stretches decay the registers into denormal territory;
	// flushing once per block keeps the per-sample loop out of slow paths.
	flushSectionState(&e.mainL)
	flushSectionState(&e.mainR)
	flushSectionState(&e.subL)
	flushSectionState(&e.subR)

	return frames
}

func boundFrames(frames int, in, out []float64) int {
	if frames < 0 {
		return 0
	}
	if n := len(in) / 2; n < frames {
		frames = n
	}
	if n := len(out) / 2; n < frames {
		frames = n
	}
	return frames
}

func flushSectionState(s *biquad.Section) {
	st := s.State()
	s.SetState([2]float64{
		core.FlushDenormals(st[0]),
		core.FlushDenormals(st[1]),
	})
}
