package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns coefficients for a unity gain passthrough (B0=1, all else 0).
func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// gentleLowpass returns a stable resonant lowpass-shaped biquad used
// throughout these tests.
func gentleLowpass() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	st := s.State()
	if st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(passthrough())
	input := []float64{1, 0, -1, 0.5, 0.25}
	for i, x := range input {
		y := s.ProcessSample(x)
		if !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced DF-II-T with B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04
	// driven by x = [1, 0, 0, 0]:
	//
	// n=0: y=0.25*1+0 = 0.25
	//      d0=0.5*1-(-0.2)*0.25+0 = 0.55
	//      d1=0.25*1-0.04*0.25 = 0.24
	//
	// n=1: y=0.55
	//      d0=-(-0.2)*0.55+0.24 = 0.35
	//      d1=-0.04*0.55 = -0.022
	//
	// n=2: y=0.35
	//      d0=0.07-0.022 = 0.048
	//      d1=-0.014
	//
	// n=3: y=0.048
	s := NewSection(gentleLowpass())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		y := s.ProcessSample(x)
		if !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessSample_ZeroStateInvariance(t *testing.T) {
	// After Reset, silence in must be silence out, exactly, for any
	// coefficient set.
	sets := []Coefficients{
		passthrough(),
		gentleLowpass(),
		{B0: 0.97, B1: 1.95, B2: 0.97, A1: 1.95, A2: 0.95},
	}
	for _, c := range sets {
		s := NewSection(c)
		s.ProcessSample(1)
		s.ProcessSample(-0.5)
		s.Reset()
		for i := 0; i < 64; i++ {
			if y := s.ProcessSample(0); y != 0 {
				t.Fatalf("coeffs %v sample %d: got %v, want exact 0", c, i, y)
			}
		}
	}
}

func TestSetCoefficients_PreservesState(t *testing.T) {
	// A live coefficient swap must leave the delay registers bit-identical;
	// only the response changes.
	s := NewSection(gentleLowpass())
	for _, x := range []float64{1, 0.5, -0.3, 0.7} {
		s.ProcessSample(x)
	}

	before := s.State()
	s.SetCoefficients(Coefficients{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.4, A2: 0.1})
	after := s.State()

	if before != after {
		t.Fatalf("state changed across swap: before %v, after %v", before, after)
	}

	// Next sample must use the new coefficients in full: y = B0*x + d0.
	x := 0.25
	want := 0.1*x + before[0]
	if y := s.ProcessSample(x); !almostEqual(y, want, eps) {
		t.Fatalf("first post-swap sample: got %v, want %v", y, want)
	}
}

func TestSetCoefficients_NoPartialBlend(t *testing.T) {
	// The first sample after a swap must match a filter that always had the
	// new coefficients with the same register contents.
	s1 := NewSection(gentleLowpass())
	for _, x := range []float64{0.9, -0.6, 0.3, 0.1, -0.8} {
		s1.ProcessSample(x)
	}

	next := Coefficients{B0: 0.5, B1: 1.0, B2: 0.5, A1: 0.3, A2: 0.2}
	s2 := NewSection(next)
	s2.SetState(s1.State())
	s1.SetCoefficients(next)

	for i := 0; i < 16; i++ {
		x := math.Sin(float64(i) * 0.3)
		y1 := s1.ProcessSample(x)
		y2 := s2.ProcessSample(x)
		if y1 != y2 {
			t.Fatalf("sample %d: swapped %v, reference %v", i, y1, y2)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	// ProcessSample reference
	s1 := NewSection(gentleLowpass())
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, 0.1}
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	// ProcessBlock
	s2 := NewSection(gentleLowpass())
	block := make([]float64, len(input))
	copy(block, input)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", i, block[i], ref[i])
		}
	}

	if s1.State() != s2.State() {
		t.Fatalf("state mismatch: sample %v, block %v", s1.State(), s2.State())
	}
}

func TestProcessBlockTo_MatchesSample(t *testing.T) {
	s1 := NewSection(gentleLowpass())
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(gentleLowpass())
	dst := make([]float64, len(input))
	s2.ProcessBlockTo(dst, input)

	for i := range dst {
		if !almostEqual(dst[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlockTo=%.15f, ProcessSample=%.15f", i, dst[i], ref[i])
		}
	}
}

func TestProcessBlockScalar_MatchesUnrolled(t *testing.T) {
	c := gentleLowpass()
	input := make([]float64, 257) // odd length to exercise the tail
	for i := range input {
		input[i] = math.Sin(float64(i) * 0.05)
	}

	a := make([]float64, len(input))
	copy(a, input)
	b := make([]float64, len(input))
	copy(b, input)

	d0a, d1a := processBlockScalar(c, 0, 0, a)
	d0b, d1b := processBlockUnrolled2(c, 0, 0, b)

	for i := range a {
		if !almostEqual(a[i], b[i], eps) {
			t.Fatalf("sample %d: scalar %v, unrolled %v", i, a[i], b[i])
		}
	}
	if !almostEqual(d0a, d0b, eps) || !almostEqual(d1a, d1b, eps) {
		t.Fatalf("state mismatch: scalar (%v,%v), unrolled (%v,%v)", d0a, d1a, d0b, d1b)
	}
}

func TestReset(t *testing.T) {
	s := NewSection(gentleLowpass())
	s.ProcessSample(1)
	s.ProcessSample(1)
	if s.State() == [2]float64{0, 0} {
		t.Fatal("state unexpectedly zero before reset")
	}

	c := s.Coefficients
	s.Reset()
	if s.State() != [2]float64{0, 0} {
		t.Fatalf("state not cleared: %v", s.State())
	}
	if s.Coefficients != c {
		t.Fatalf("reset touched coefficients: got %v, want %v", s.Coefficients, c)
	}
}
