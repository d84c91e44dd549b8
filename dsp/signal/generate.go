// Package signal generates deterministic test and demo signals.
package signal

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-modfx/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates length samples of a sine wave at freqHz.
func (g *Generator) Sine(freqHz, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Sawtooth generates length samples of a naive (non-bandlimited) sawtooth
// at freqHz, sweeping -amplitude..amplitude once per period.
func (g *Generator) Sawtooth(freqHz, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := freqHz / g.cfg.SampleRate
	phase := 0.0
	for i := range out {
		out[i] = amplitude * (2*phase - 1)
		phase += step
		if phase >= 1 {
			phase -= 1
		}
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func (g *Generator) Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Noise generates white noise with the generator's seed for reproducibility.
func (g *Generator) Noise(amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
