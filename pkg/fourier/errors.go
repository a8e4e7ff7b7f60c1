package fourier

import "errors"

// Sentinel errors returned by the transform functions. Callers should
// compare with errors.Is since most are wrapped with size details.
var (
	// ErrEmpty is returned when a transform is given a zero-length sequence.
	ErrEmpty = errors.New("fourier: empty sequence")

	// ErrNotPowerOfTwo is returned when the sequence length is not a power of 2.
	// The radix-2 recursion halves the input at every level and cannot
	// handle any other length.
	ErrNotPowerOfTwo = errors.New("fourier: length is not a power of two")

	// ErrTooLarge is returned when the sequence length exceeds MaxSize.
	ErrTooLarge = errors.New("fourier: length exceeds maximum transform size")

	// ErrShape is returned when a Grid or Spectrum is nil, not square,
	// or has a side that is not a supported power of two.
	ErrShape = errors.New("fourier: invalid grid shape")
)
