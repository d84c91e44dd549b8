// Package effects provides block-oriented audio effect drivers built on the
// filter primitives in dsp/filter.
//
// [TwoPoleLowpass] is a resonant two-pole lowpass over two interleaved
// stereo pairs, designed for hard real-time callback execution: the
// processing path is allocation-free, lock-free and applies pending control
// changes exactly once per block.
package effects
