// Command lowpassdemo auditions the two-pole lowpass effect.
//
// It renders a sawtooth through the effect while sweeping the cutoff knob
// down and back up, then plays the result.
//
// Usage:
//
//	lowpassdemo [flags]
//
// Examples:
//
//	lowpassdemo
//	lowpassdemo -seconds 8 -resonance 0.8
//	lowpassdemo -block 128 -play=false
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/signal"
	"github.com/cwbudde/algo-modfx/modfx"
)

func main() {
	seconds := flag.Float64("seconds", 6, "demo duration in seconds")
	sawHz := flag.Float64("freq", 110, "sawtooth frequency in Hz")
	resonance := flag.Float64("resonance", 0.6, "resonance knob position in [0, 1)")
	block := flag.Int("block", core.DefaultProcessorConfig().BlockSize, "frames per processing block")
	play := flag.Bool("play", true, "play the rendered audio (false: print stats only)")
	flag.Parse()

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(modfx.SampleRate),
		core.WithBlockSize(*block),
	)

	rendered, err := render(cfg, *seconds, *sawHz, *resonance)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lowpassdemo:", err)
		os.Exit(1)
	}

	left, right := splitChannels(rendered)
	fmt.Printf("rendered %.1fs at %d Hz, peak L %.3f R %.3f\n",
		float64(len(rendered)/2)/modfx.SampleRate, modfx.SampleRate,
		peakAbs(left), peakAbs(right))

	if !*play {
		return
	}

	if err := playback(rendered); err != nil {
		fmt.Fprintln(os.Stderr, "lowpassdemo:", err)
		os.Exit(1)
	}
}

// render runs a mono sawtooth through both stereo channels of the effect,
// sweeping the cutoff knob from fully open down to closed and back. The
// rendered length is the requested duration rounded down to whole blocks
// of cfg.BlockSize frames.
func render(cfg core.ProcessorConfig, seconds, sawHz, resonance float64) ([]float32, error) {
	if seconds <= 0 || seconds > 120 {
		return nil, fmt.Errorf("seconds must be in (0, 120]: %v", seconds)
	}
	if cfg.BlockSize < 1 || cfg.BlockSize > 4096 {
		return nil, fmt.Errorf("block size must be in [1, 4096]: %d", cfg.BlockSize)
	}

	unit, err := modfx.NewUnit()
	if err != nil {
		return nil, err
	}
	unit.Init(0, 0)
	unit.SetParam(modfx.ParamResonance, core.Float64ToQ31(core.Clamp(resonance, 0, 0.999)))

	gen := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(cfg.SampleRate)})

	blockFrames := cfg.BlockSize
	frames := int(seconds * cfg.SampleRate)
	frames -= frames % blockFrames
	if frames == 0 {
		return nil, fmt.Errorf("duration %vs shorter than one %d-frame block", seconds, blockFrames)
	}
	saw := gen.Sawtooth(sawHz, 0.4, frames)

	stereo := make([]float64, 2*blockFrames)
	in := make([]float32, 2*blockFrames)
	out := make([]float32, 2*blockFrames)
	rendered := make([]float32, 0, 2*frames)

	blocks := frames / blockFrames
	for b := 0; b < blocks; b++ {
		// Triangle sweep: open -> closed -> open over the full duration.
		pos := 2 * float64(b) / float64(blocks)
		if pos > 1 {
			pos = 2 - pos
		}
		unit.SetParam(modfx.ParamCutoff, core.Float64ToQ31(core.Clamp(pos, 0, 0.999)))

		mono := saw[b*blockFrames : (b+1)*blockFrames]
		core.Interleave(stereo, mono, mono)
		core.Narrow(in, stereo)

		unit.Process(in, out, nil, nil, uint32(blockFrames))
		rendered = append(rendered, out...)
	}

	return rendered, nil
}

// splitChannels widens the interleaved render back to float64 and splits
// it into left and right channels for reporting.
func splitChannels(samples []float32) (left, right []float64) {
	wide := make([]float64, len(samples))
	core.Widen(wide, samples)

	left = make([]float64, len(wide)/2)
	right = make([]float64, len(wide)/2)
	core.Deinterleave(left, right, wide)
	return left, right
}

func peakAbs(samples []float64) float64 {
	peak := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

func playback(samples []float32) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   modfx.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	pcm := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(pcm[4*i:], math.Float32bits(v))
	}

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	return player.Close()
}
