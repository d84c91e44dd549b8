package effects_test

import (
	"testing"

	"github.com/cwbudde/algo-modfx/dsp/effects"
	"github.com/cwbudde/algo-modfx/internal/testutil"
)

// Drives the effect the way a host does: blocks of interleaved stereo audio
// with knob movements between blocks.
func TestTwoPoleLowpass_HostStyleSession(t *testing.T) {
	const (
		sampleRate = 48000
		blockSize  = 64
		blocks     = 128
	)

	lp, err := effects.NewTwoPoleLowpass(sampleRate)
	if err != nil {
		t.Fatalf("NewTwoPoleLowpass: %v", err)
	}

	// Program material: a 220 Hz tone with broadband noise on top, so the
	// sweep runs over both tonal and full-spectrum content.
	total := 2 * blockSize * blocks
	input := testutil.DeterministicSine(220, sampleRate, 0.5, total)
	noise := testutil.DeterministicNoise(1234, 0.3, total)
	for i := range input {
		input[i] += noise[i]
	}

	out := make([]float64, 2*blockSize)
	sub := make([]float64, 2*blockSize)
	subOut := make([]float64, 2*blockSize)

	for b := 0; b < blocks; b++ {
		// Sweep the cutoff down and the resonance up over the session.
		lp.SetCutoffControl(1 - float64(b)/blocks)
		lp.SetResonanceControl(float64(b) / blocks)

		in := input[2*blockSize*b : 2*blockSize*(b+1)]
		copy(sub, in)
		if n := lp.Process(in, out, sub, subOut, blockSize); n != blockSize {
			t.Fatalf("block %d: processed %d frames, want %d", b, n, blockSize)
		}

		testutil.RequireFinite(t, out)
		testutil.RequireFinite(t, subOut)

		// Main and sub receive identical input, share identical
		// coefficients and identical history, so they must emit
		// identical output.
		testutil.RequireStereoPairsNearlyEqual(t, subOut, out, 0)
	}
}

func TestTwoPoleLowpass_ImpulsePlacement(t *testing.T) {
	const frames = 32

	lp, err := effects.NewTwoPoleLowpass(48000)
	if err != nil {
		t.Fatalf("NewTwoPoleLowpass: %v", err)
	}

	// Right-channel impulse must come out on the right channel only.
	in := testutil.StereoImpulse(frames, 0, 1)
	out := make([]float64, 2*frames)
	lp.Process(in, out, nil, nil, frames)

	for i := 0; i < frames; i++ {
		if out[2*i] != 0 {
			t.Fatalf("left frame %d: got %v, want exact 0", i, out[2*i])
		}
	}
	if out[1] == 0 {
		t.Fatal("right channel lost the impulse")
	}
}
