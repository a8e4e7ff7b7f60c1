package fourier

import (
	"math"
)

// Forward2D performs a 2D Fast Fourier Transform on a square grid.
//
// The transform is separable: every row is transformed with the 1D FFT,
// the matrix is transposed in place so the columns become rows, those rows
// are transformed, and a second transpose restores the original layout.
//
// Parameters:
//   - g: input grid with a power-of-two side
//
// Returns:
//   - the un-shifted spectrum of g
func Forward2D(g *Grid) (*Spectrum, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	s := NewSpectrum(g.Size)
	for i, v := range g.Pix {
		s.Data[i] = complex(float64(v), 0)
	}

	transformRows(s, fft)
	Transpose(s)
	transformRows(s, fft)
	Transpose(s)

	return s, nil
}

// Inverse2D reconstructs an 8-bit grid from a spectrum. Only the real
// part of each reconstructed value is kept; it is rounded and clamped to
// [0, 255]. The input spectrum is not modified.
func Inverse2D(s *Spectrum) (*Grid, error) {
	g, _, err := Inverse2DResidual(s)
	return g, err
}

// Inverse2DResidual is Inverse2D that also reports the largest imaginary
// magnitude discarded during reconstruction. A spectrum that lost its
// conjugate symmetry (for example through an asymmetric filter) yields a
// non-negligible residual; this is diagnostic only.
func Inverse2DResidual(s *Spectrum) (*Grid, float64, error) {
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}

	work := s.Clone()
	transformRows(work, ifft)
	Transpose(work)
	transformRows(work, ifft)
	Transpose(work)

	g := NewGrid(s.Size)
	residual := 0.0
	for i, v := range work.Data {
		if r := math.Abs(imag(v)); r > residual {
			residual = r
		}
		g.Pix[i] = clampSample(real(v))
	}

	return g, residual, nil
}

// Transpose swaps element (i, j) with (j, i) for every j < i, in place.
func Transpose(s *Spectrum) {
	n := s.Size
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			s.Data[i*n+j], s.Data[j*n+i] = s.Data[j*n+i], s.Data[i*n+j]
		}
	}
}

// transformRows replaces every row of s with f(row).
func transformRows(s *Spectrum, f func([]complex128) []complex128) {
	n := s.Size
	for i := 0; i < n; i++ {
		row := s.Data[i*n : (i+1)*n]
		copy(row, f(row))
	}
}

// clampSample rounds v to the nearest integer in [0, 255].
func clampSample(v float64) uint8 {
	v = math.Round(v)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
