package fourier

import "fmt"

// Grid is a square image of 8-bit samples stored in row-major order.
// Row 0 is the top of the image.
type Grid struct {
	// Size is the side length of the grid.
	Size int

	// Pix holds Size*Size samples.
	Pix []uint8
}

// NewGrid allocates a zeroed size×size grid.
func NewGrid(size int) *Grid {
	return &Grid{Size: size, Pix: make([]uint8, size*size)}
}

// At returns the sample at (row, col).
func (g *Grid) At(row, col int) uint8 {
	return g.Pix[row*g.Size+col]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col int, v uint8) {
	g.Pix[row*g.Size+col] = v
}

// Validate checks that g is a square grid with a power-of-two side.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrShape)
	}
	return validateShape(g.Size, len(g.Pix))
}

// Floats returns the samples as float64 values in the same order.
func (g *Grid) Floats() []float64 {
	out := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		out[i] = float64(v)
	}
	return out
}

// Spectrum is the frequency-domain form of a Grid. Data is row-major and
// un-shifted: index (0, 0) holds the DC component and low frequencies
// wrap around both edges.
type Spectrum struct {
	Size int
	Data []complex128
}

// NewSpectrum allocates a zeroed size×size spectrum.
func NewSpectrum(size int) *Spectrum {
	return &Spectrum{Size: size, Data: make([]complex128, size*size)}
}

// At returns the coefficient at frequency (u, v).
func (s *Spectrum) At(u, v int) complex128 {
	return s.Data[u*s.Size+v]
}

// Set stores c at frequency (u, v).
func (s *Spectrum) Set(u, v int, c complex128) {
	s.Data[u*s.Size+v] = c
}

// Clone returns a deep copy of s.
func (s *Spectrum) Clone() *Spectrum {
	out := &Spectrum{Size: s.Size, Data: make([]complex128, len(s.Data))}
	copy(out.Data, s.Data)
	return out
}

// Validate checks that s is a square spectrum with a power-of-two side.
func (s *Spectrum) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spectrum", ErrShape)
	}
	return validateShape(s.Size, len(s.Data))
}

// Energy returns the sum of squared magnitudes of all coefficients.
func (s *Spectrum) Energy() float64 {
	var e float64
	for _, c := range s.Data {
		e += real(c)*real(c) + imag(c)*imag(c)
	}
	return e
}

func validateShape(size, length int) error {
	switch {
	case size <= 0:
		return fmt.Errorf("%w: side %d", ErrShape, size)
	case size > MaxSize:
		return fmt.Errorf("%w: side %d exceeds %d", ErrShape, size, MaxSize)
	case !IsPowerOfTwo(size):
		return fmt.Errorf("%w: side %d is not a power of two", ErrShape, size)
	case size*size != length:
		return fmt.Errorf("%w: %d values for a %dx%d grid", ErrShape, length, size, size)
	}
	return nil
}
