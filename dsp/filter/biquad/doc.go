// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Coefficients can be swapped
// while audio is flowing via [Section.SetCoefficients]; the delay registers
// carry forward untouched, which keeps live parameter changes click-free.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
