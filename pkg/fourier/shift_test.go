package fourier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftMovesDCToCentre(t *testing.T) {
	const n = 8
	s := NewSpectrum(n)
	s.Set(0, 0, complex(math.E-1, 0))

	l, err := ShiftAndLogScale(s)
	require.NoError(t, err)

	assert.InDelta(t, 1, l.At(n/2, n/2), 1e-12)
	for i, v := range l.Values {
		if i != (n/2)*n+n/2 {
			assert.Zero(t, v, "value %d away from centre", i)
		}
	}
}

func TestShiftWrapsQuadrants(t *testing.T) {
	const n = 4
	s := NewSpectrum(n)
	for i := range s.Data {
		s.Data[i] = complex(float64(i), 0)
	}

	l, err := ShiftAndLogScale(s)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := math.Log1p(float64(i*n + j))
			assert.InDelta(t, want, l.At((n/2+i)%n, (n/2+j)%n), 1e-12, "(%d,%d)", i, j)
		}
	}
}

func TestShiftDoesNotTouchSpectrum(t *testing.T) {
	s, err := Forward2D(randomGrid(8, 7))
	require.NoError(t, err)
	before := s.Clone()

	_, err = ShiftAndLogScale(s)
	require.NoError(t, err)
	assert.Equal(t, before.Data, s.Data)
}

func TestLogGridToGrid(t *testing.T) {
	l := &LogGrid{Size: 2, Values: []float64{0, 9, 18, 40}}

	assert.Equal(t, []uint8{0, 128, 255, 255}, l.ToGrid(DefaultLogDivisor).Pix)

	// Non-positive divisor falls back to the default
	assert.Equal(t, uint8(128), l.ToGrid(0).Pix[1])

	assert.Equal(t, 40.0, l.Max())
}
