// Package filter implements the frequency-domain filter bank: ideal,
// Gaussian and Butterworth transfer functions in low-pass and high-pass
// form, evaluated on the centred radial distance of each coefficient of an
// un-shifted spectrum.
package filter

import (
	"errors"
	"fmt"
	"math"

	"freqfilter/pkg/fourier"
)

// ButterworthOrder is the fixed order n of the Butterworth response
// 1 / (1 + (d/c)^n).
const ButterworthOrder = 4

var (
	// ErrInvalidCutoff is returned for a cutoff (or Gaussian σ) that is not
	// a finite positive number.
	ErrInvalidCutoff = errors.New("filter: cutoff must be a finite positive number")

	// ErrUnknownKind is returned for a Kind outside the six defined filters.
	ErrUnknownKind = errors.New("filter: unknown filter kind")
)

// Params selects a transfer function and its cutoff. For Gaussian kinds
// Cutoff is the standard deviation σ.
type Params struct {
	Kind   Kind
	Cutoff float64
}

func (p Params) String() string {
	return fmt.Sprintf("%s(%g)", p.Kind, p.Cutoff)
}

// Validate checks the kind and cutoff.
func (p Params) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(p.Kind))
	}
	if !(p.Cutoff > 0) || math.IsInf(p.Cutoff, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidCutoff, p.Cutoff)
	}
	return nil
}

// Distance returns the Euclidean distance of frequency index (i, j) of an
// n×n un-shifted spectrum from the zero-frequency centre, measured after
// the same recentring used for display so that indices near 0 and near n
// are both close to the centre.
func Distance(i, j, n int) float64 {
	half := n / 2
	u := (half+i)%n - half
	v := (half+j)%n - half
	return math.Hypot(float64(u), float64(v))
}

// Gain evaluates the transfer function at radial distance d. The result
// is in [0, 1] and never NaN for a valid Params.
func (p Params) Gain(d float64) float64 {
	c := p.Cutoff

	switch p.Kind.Family() {
	case Ideal:
		pass := d <= c
		if p.Kind.Pass() == HighPass {
			pass = !pass
		}
		if pass {
			return 1
		}
		return 0

	case Gaussian:
		low := 1.0
		if d > 0 {
			low = math.Exp(-(d * d) / (2 * c * c))
		}
		if p.Kind.Pass() == HighPass {
			return 1 - low
		}
		return low

	case Butterworth:
		r := math.Pow(d/c, ButterworthOrder)
		if p.Kind.Pass() == HighPass {
			if math.IsInf(r, 1) {
				return 1
			}
			return r / (1 + r)
		}
		return 1 / (1 + r)
	}

	return 0
}

// Mask evaluates the transfer function over an n×n un-shifted spectrum,
// returning row-major gains.
func (p Params) Mask(n int) []float64 {
	mask := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			mask[i*n+j] = p.Gain(Distance(i, j, n))
		}
	}
	return mask
}

// Apply returns a new spectrum with every coefficient multiplied by the
// transfer function of p. The input spectrum is not modified.
func Apply(s *fourier.Spectrum, p Params) (*fourier.Spectrum, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", p, err)
	}

	n := s.Size
	mask := p.Mask(n)
	out := fourier.NewSpectrum(n)
	for i, v := range s.Data {
		switch g := mask[i]; g {
		case 0:
			// zeroed
		case 1:
			out.Data[i] = v
		default:
			out.Data[i] = complex(real(v)*g, imag(v)*g)
		}
	}

	return out, nil
}
