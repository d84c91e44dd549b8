// Package response measures the empirical frequency response of filter
// sections by FFT-transforming their impulse response.
//
// It exists mainly to validate filter designs against their closed-form
// response and to inspect live filter instances without disturbing their
// state.
package response
