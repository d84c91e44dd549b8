package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-modfx/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	// Create a lowpass-like biquad section.
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	// Process an impulse.
	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		y := s.ProcessSample(x)
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleSection_SetCoefficients() {
	s := biquad.NewSection(biquad.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)
	before := s.State()

	// Swap the response live; the delay registers carry forward untouched.
	s.SetCoefficients(biquad.Coefficients{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.4, A2: 0.1})

	fmt.Println("state preserved:", s.State() == before)
	// Output:
	// state preserved: true
}
