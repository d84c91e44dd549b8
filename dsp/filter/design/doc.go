// Package design provides biquad coefficient design for the two-pole
// lowpass runtime in dsp/filter/biquad.
//
// Only the second-order lowpass prototype is implemented. [LowpassPrewarped]
// takes an already tangent-warped cutoff for callers that track cutoff as a
// fraction of the sample rate; [Lowpass] accepts Hz and prewarps internally.
package design
