package filter

import "fmt"

// Scales maps a selector index onto a cutoff magnitude per family:
// cutoff = scale × (index + 1).
type Scales struct {
	Ideal       float64 `yaml:"ideal"`
	Gaussian    float64 `yaml:"gaussian"`
	Butterworth float64 `yaml:"butterworth"`
}

// DefaultScales reproduces the viewer's tuning: 20 per step for ideal and
// Gaussian filters, 10 per step for Butterworth.
var DefaultScales = Scales{Ideal: 20, Gaussian: 20, Butterworth: 10}

// For returns the scale used for family f.
func (s Scales) For(f Family) float64 {
	switch f {
	case Gaussian:
		return s.Gaussian
	case Butterworth:
		return s.Butterworth
	}
	return s.Ideal
}

// CutoffFromIndex converts a selector index into a cutoff for kind k.
func CutoffFromIndex(k Kind, index int, s Scales) (float64, error) {
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	if index < 0 {
		return 0, fmt.Errorf("%w: negative cutoff index %d", ErrInvalidCutoff, index)
	}
	c := s.For(k.Family()) * float64(index+1)
	if !(c > 0) {
		return 0, fmt.Errorf("%w: scale %v for %s", ErrInvalidCutoff, s.For(k.Family()), k.Family())
	}
	return c, nil
}

// ParamsFromIndex builds Params for kind k at selector index.
func ParamsFromIndex(k Kind, index int, s Scales) (Params, error) {
	c, err := CutoffFromIndex(k, index, s)
	if err != nil {
		return Params{}, err
	}
	return Params{Kind: k, Cutoff: c}, nil
}
