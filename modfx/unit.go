// Package modfx adapts the two-pole lowpass effect to a modulation-effect
// host boundary: float32 interleaved stereo buffers at a fixed 48 kHz rate,
// knob updates as q31 fixed-point control messages, and an init call that
// restores power-on defaults.
//
// The host is expected to call Process and SetParam non-concurrently for the
// same Unit (cooperative scheduling); with that guarantee the Unit needs no
// locks on the processing path.
package modfx

import (
	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects"
)

// SampleRate is the fixed host processing rate in Hz.
const SampleRate = 48000

// ParamID identifies a host control knob.
type ParamID uint8

// Knob assignments. Indices the unit does not recognize are silently
// ignored, so hosts with additional controls stay compatible.
const (
	// ParamCutoff is the time knob: normalized cutoff control.
	ParamCutoff ParamID = iota

	// ParamResonance is the depth knob: normalized resonance control.
	ParamResonance
)

// chunkFrames sizes the preallocated conversion scratch. Hosts deliver
// blocks well below this; larger blocks are processed in chunks.
const chunkFrames = 256

// Unit is one effect instance bound to the host boundary.
type Unit struct {
	fx *effects.TwoPoleLowpass

	// Conversion scratch, allocated once so Process never allocates.
	mainIn, mainOut []float64
	subIn, subOut   []float64
}

// NewUnit allocates a unit with power-on defaults. All allocation happens
// here; the processing entry points are allocation-free.
func NewUnit() (*Unit, error) {
	fx, err := effects.NewTwoPoleLowpass(SampleRate)
	if err != nil {
		return nil, err
	}

	return &Unit{
		fx:      fx,
		mainIn:  make([]float64, 2*chunkFrames),
		mainOut: make([]float64, 2*chunkFrames),
		subIn:   make([]float64, 2*chunkFrames),
		subOut:  make([]float64, 2*chunkFrames),
	}, nil
}

// Init restores power-on defaults: cutoff 0.49 turns, resonance 1.4142,
// all four channel filters reset, initial coefficients computed and
// assigned. The platform and api identifiers are accepted for boundary
// compatibility and ignored.
func (u *Unit) Init(platform, api uint32) {
	_ = platform
	_ = api

	u.fx.Reset()
	u.fx.SetCutoffTurns(effects.DefaultCutoffTurns)
	u.fx.SetResonance(effects.DefaultResonance)
	u.fx.RefreshCoefficients()
}

// SetParam decodes a q31 control value in the normalized unit interval and
// routes it to the named knob. The effect is deferred to the next Process
// call; any number of updates between blocks costs one recomputation.
// Unknown indices are ignored.
func (u *Unit) SetParam(index ParamID, value int32) {
	v := core.Clamp(core.Q31ToFloat64(value), 0, 1)

	switch index {
	case ParamCutoff:
		u.fx.SetCutoffControl(v)
	case ParamResonance:
		u.fx.SetResonanceControl(v)
	default:
	}
}

// Process filters frames interleaved stereo pairs from mainIn into mainOut
// and from subIn into subOut, in place of the host's audio callback. The sub
// pair may be nil. Exactly min(frames, buffer capacity) pairs per channel
// pair are processed in order, with no reordering and no drop/duplicate.
func (u *Unit) Process(mainIn, mainOut, subIn, subOut []float32, frames uint32) {
	remaining := int(frames)
	offset := 0

	hasSub := subIn != nil && subOut != nil

	for remaining > 0 {
		n := remaining
		if n > chunkFrames {
			n = chunkFrames
		}

		if avail := len(mainIn[2*offset:]) / 2; avail < n {
			n = avail
		}
		if hasSub {
			if avail := len(subIn[2*offset:]) / 2; avail < n {
				n = avail
			}
		}
		if n == 0 {
			return
		}

		core.Widen(u.mainIn[:2*n], mainIn[2*offset:2*offset+2*n])
		if hasSub {
			core.Widen(u.subIn[:2*n], subIn[2*offset:2*offset+2*n])
		}

		if hasSub {
			n = u.fx.Process(u.mainIn[:2*n], u.mainOut[:2*n], u.subIn[:2*n], u.subOut[:2*n], n)
		} else {
			n = u.fx.Process(u.mainIn[:2*n], u.mainOut[:2*n], nil, nil, n)
		}

		core.Narrow(mainOut[2*offset:], u.mainOut[:2*n])
		if hasSub {
			core.Narrow(subOut[2*offset:], u.subOut[:2*n])
		}

		offset += n
		remaining -= n
	}
}
