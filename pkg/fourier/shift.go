package fourier

import (
	"math"
	"math/cmplx"
)

// DefaultLogDivisor maps the log-magnitude range of a typical 512×512
// 8-bit image spectrum onto [0, 255].
const DefaultLogDivisor = 18.0

// LogGrid holds a shifted log-magnitude view of a Spectrum, with the DC
// component at (Size/2, Size/2).
type LogGrid struct {
	Size   int
	Values []float64
}

// At returns the value at (row, col).
func (l *LogGrid) At(row, col int) float64 {
	return l.Values[row*l.Size+col]
}

// ShiftAndLogScale recentres the zero frequency and compresses the
// magnitude range: the value stored at ((N/2+i) mod N, (N/2+j) mod N) is
// log(1 + |s[i][j]|). It is a display-only view and does not modify s.
func ShiftAndLogScale(s *Spectrum) (*LogGrid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := s.Size
	half := n / 2
	out := &LogGrid{Size: n, Values: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		di := (half + i) % n
		for j := 0; j < n; j++ {
			dj := (half + j) % n
			out.Values[di*n+dj] = math.Log1p(cmplx.Abs(s.Data[i*n+j]))
		}
	}
	return out, nil
}

// ToGrid rescales the log-magnitudes linearly into 8-bit samples,
// value*255/divisor, clamped. A non-positive divisor selects
// DefaultLogDivisor.
func (l *LogGrid) ToGrid(divisor float64) *Grid {
	if divisor <= 0 {
		divisor = DefaultLogDivisor
	}
	g := NewGrid(l.Size)
	for i, v := range l.Values {
		g.Pix[i] = clampSample(v * 255 / divisor)
	}
	return g
}

// Max returns the largest value in the grid.
func (l *LogGrid) Max() float64 {
	m := 0.0
	for _, v := range l.Values {
		if v > m {
			m = v
		}
	}
	return m
}
