package fourier

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gonumfourier "gonum.org/v1/gonum/dsp/fourier"
)

const tolerance = 1e-9

func closeTo(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}

// TestFFT1D verifies the DC and Nyquist terms of a ramp
func TestFFT1D(t *testing.T) {
	n := 8
	x := make([]complex128, n)
	for i := 0; i < n; i++ {
		x[i] = complex(float64(i), 0)
	}

	y, err := Forward(x)
	require.NoError(t, err)
	require.Len(t, y, n)

	// DC component should be sum of input
	sum := complex(0, 0)
	for _, v := range x {
		sum += v
	}
	assert.True(t, closeTo(y[0], sum, 1e-10), "DC: expected %v, got %v", sum, y[0])

	// Nyquist component should be alternating sum
	altSum := complex(0, 0)
	for i, v := range x {
		if i%2 == 0 {
			altSum += v
		} else {
			altSum -= v
		}
	}
	assert.True(t, closeTo(y[n/2], altSum, 1e-10), "Nyquist: expected %v, got %v", altSum, y[n/2])
}

// TestForwardMatchesGonum compares the recursive engine against gonum's
// complex FFT for a range of sizes.
func TestForwardMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{2, 4, 8, 32, 256} {
		x := make([]complex128, n)
		for i := range x {
			x[i] = complex(rng.Float64()*255, rng.Float64()*10-5)
		}

		got, err := Forward(x)
		require.NoError(t, err, "n=%d", n)
		want := gonumfourier.NewCmplxFFT(n).Coefficients(nil, x)

		for k := range want {
			require.True(t, closeTo(got[k], want[k], 1e-6), "n=%d: X[%d] = %v, gonum gives %v", n, k, got[k], want[k])
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	x := make([]complex128, 64)
	for i := range x {
		x[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	coeffs, err := Forward(x)
	require.NoError(t, err)
	back, err := Inverse(coeffs)
	require.NoError(t, err)

	for i := range x {
		require.True(t, closeTo(back[i], x[i], tolerance), "x[%d]: expected %v, got %v", i, x[i], back[i])
	}
}

// TestSingleSample checks the trivial base case in both directions
func TestSingleSample(t *testing.T) {
	x := []complex128{complex(3.5, -1.25)}

	fwd, err := Forward(x)
	require.NoError(t, err)
	assert.Equal(t, x, fwd)

	inv, err := Inverse(x)
	require.NoError(t, err)
	assert.Equal(t, x, inv)
}

func TestForwardDoesNotMutateInput(t *testing.T) {
	x := []complex128{1, 2, 3, 4}
	orig := append([]complex128(nil), x...)

	_, err := Forward(x)
	require.NoError(t, err)
	_, err = Inverse(x)
	require.NoError(t, err)
	assert.Equal(t, orig, x)
}

func TestInvalidLengths(t *testing.T) {
	testCases := []struct {
		n    int
		want error
	}{
		{0, ErrEmpty},
		{3, ErrNotPowerOfTwo},
		{6, ErrNotPowerOfTwo},
		{100, ErrNotPowerOfTwo},
		{MaxSize * 2, ErrTooLarge},
	}

	for _, tc := range testCases {
		x := make([]complex128, tc.n)
		_, err := Forward(x)
		assert.ErrorIs(t, err, tc.want, "Forward(len=%d)", tc.n)
		_, err = Inverse(x)
		assert.ErrorIs(t, err, tc.want, "Inverse(len=%d)", tc.n)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for n, want := range map[int]bool{
		-4: false, 0: false, 1: true, 2: true, 3: false, 512: true, 768: false,
	} {
		assert.Equal(t, want, IsPowerOfTwo(n), "IsPowerOfTwo(%d)", n)
	}
}

func TestTwiddle(t *testing.T) {
	assert.True(t, closeTo(twiddle(0, 8), 1, tolerance))
	assert.True(t, closeTo(twiddle(2, 8), complex(0, -1), tolerance))
	assert.InDelta(t, 1, cmplx.Abs(twiddle(1, 8)), tolerance)
	assert.InDelta(t, -math.Sqrt2/2, imag(twiddle(1, 8)), tolerance)
}
