package core

// Widen converts float32 boundary samples to float64, copying
// min(len(dst), len(src)) samples. Returns the number converted.
func Widen(dst []float64, src []float32) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}

	for i := 0; i < n; i++ {
		dst[i] = float64(src[i])
	}

	return n
}

// Narrow converts float64 samples back to float32 for the host boundary,
// copying min(len(dst), len(src)) samples. Returns the number converted.
func Narrow(dst []float32, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}

	for i := 0; i < n; i++ {
		dst[i] = float32(src[i])
	}

	return n
}

// Interleave packs left/right channel pairs into dst as L0 R0 L1 R1 ...
// dst must hold 2*n samples where n is the shorter channel length.
// It returns the number of frames written.
func Interleave(dst, left, right []float64) int {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	if len(dst)/2 < n {
		n = len(dst) / 2
	}

	for i := 0; i < n; i++ {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}

	return n
}

// Deinterleave unpacks src (L0 R0 L1 R1 ...) into left and right.
// It returns the number of frames written.
func Deinterleave(left, right, src []float64) int {
	n := len(src) / 2
	if len(left) < n {
		n = len(left)
	}
	if len(right) < n {
		n = len(right)
	}

	for i := 0; i < n; i++ {
		left[i] = src[2*i]
		right[i] = src[2*i+1]
	}

	return n
}
