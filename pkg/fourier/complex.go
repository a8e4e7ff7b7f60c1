package fourier

import (
	"math"
	"math/cmplx"
)

// twiddle returns the k-th power of the primitive n-th root of unity,
// exp(-2πi·k/n).
func twiddle(k, n int) complex128 {
	return expI(-2 * math.Pi * float64(k) / float64(n))
}

// expI returns exp(iθ).
func expI(theta float64) complex128 {
	sin, cos := math.Sincos(theta)
	return complex(cos, sin)
}

// conjugate returns a new slice holding the complex conjugate of every
// element of x.
func conjugate(x []complex128) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = cmplx.Conj(v)
	}
	return out
}

// scale multiplies v by the real factor f without a full complex product.
func scale(v complex128, f float64) complex128 {
	return complex(real(v)*f, imag(v)*f)
}
