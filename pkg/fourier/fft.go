// Package fourier implements the frequency-domain engine used by the
// filtering pipeline: a recursive radix-2 FFT, its separable 2D form over
// square grids, and the log-magnitude spectrum view used for display.
package fourier

import (
	"fmt"
	"math/cmplx"
)

// MaxSize is the largest sequence length (and grid side) accepted by the
// transforms. It bounds both the recursion depth and the memory a single
// call may allocate.
const MaxSize = 1 << 16

// IsPowerOfTwo reports whether n is a positive power of two (1 included).
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// checkLength validates a sequence length for the radix-2 recursion.
func checkLength(n int) error {
	switch {
	case n == 0:
		return ErrEmpty
	case !IsPowerOfTwo(n):
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	case n > MaxSize:
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, n, MaxSize)
	}
	return nil
}

// Forward computes the discrete Fourier transform of x using the
// recursive Cooley-Tukey algorithm. The input is not modified.
//
// Parameters:
//   - x: sequence whose length is a power of two
//
// Returns:
//   - a new slice holding the unnormalized spectrum of x
func Forward(x []complex128) ([]complex128, error) {
	if err := checkLength(len(x)); err != nil {
		return nil, err
	}
	return fft(x), nil
}

// Inverse computes the inverse discrete Fourier transform of x, scaled by
// 1/N so that Inverse(Forward(x)) reproduces x. The input is not modified.
func Inverse(x []complex128) ([]complex128, error) {
	if err := checkLength(len(x)); err != nil {
		return nil, err
	}
	return ifft(x), nil
}

// fft performs a 1D FFT on complex input data.
// This is a recursive implementation of the Cooley-Tukey algorithm and
// expects len(x) to be a power of two.
func fft(x []complex128) []complex128 {
	n := len(x)
	if n == 1 {
		return []complex128{x[0]}
	}

	// Split into even and odd
	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)
	for i := 0; i < half; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	even = fft(even)
	odd = fft(odd)

	// Butterfly
	result := make([]complex128, n)
	for k := 0; k < half; k++ {
		t := twiddle(k, n) * odd[k]
		result[k] = even[k] + t
		result[k+half] = even[k] - t
	}

	return result
}

// ifft reuses the forward engine: conj(FFT(conj(x))) / N.
func ifft(x []complex128) []complex128 {
	n := len(x)
	y := fft(conjugate(x))
	inv := 1 / float64(n)
	for i, v := range y {
		y[i] = scale(cmplx.Conj(v), inv)
	}
	return y
}
