package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Family is the shape of a transfer function.
type Family int

const (
	Ideal Family = iota
	Gaussian
	Butterworth
)

// Pass selects which side of the cutoff a filter keeps.
type Pass int

const (
	LowPass Pass = iota
	HighPass
)

// Kind is one of the six transfer functions. The numbering matches the
// filter selector of the interactive viewer: low-pass kinds first, then
// high-pass, each in Ideal, Gaussian, Butterworth order.
type Kind int

const (
	IdealLowPass Kind = iota
	GaussianLowPass
	ButterworthLowPass
	IdealHighPass
	GaussianHighPass
	ButterworthHighPass
)

// Kinds lists every filter kind in selector order.
var Kinds = []Kind{
	IdealLowPass,
	GaussianLowPass,
	ButterworthLowPass,
	IdealHighPass,
	GaussianHighPass,
	ButterworthHighPass,
}

const numFamilies = 3

// NewKind combines a family and a pass into a Kind.
func NewKind(f Family, p Pass) Kind {
	return Kind(int(p)*numFamilies + int(f))
}

// Family returns the transfer-function shape of k.
func (k Kind) Family() Family {
	return Family(int(k) % numFamilies)
}

// Pass returns whether k keeps low or high frequencies.
func (k Kind) Pass() Pass {
	return Pass(int(k) / numFamilies)
}

// Valid reports whether k is one of the six defined kinds.
func (k Kind) Valid() bool {
	return k >= IdealLowPass && k <= ButterworthHighPass
}

func (f Family) String() string {
	switch f {
	case Ideal:
		return "ideal"
	case Gaussian:
		return "gaussian"
	case Butterworth:
		return "butterworth"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

func (p Pass) String() string {
	switch p {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	}
	return fmt.Sprintf("pass(%d)", int(p))
}

// String returns names such as "ideal-lowpass" or "butterworth-highpass".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return k.Family().String() + "-" + k.Pass().String()
}

// ParseKind accepts the names produced by Kind.String (case-insensitive,
// with "-", "_" or " " as separator and "low"/"high" as short pass names)
// or the selector index "0".."5".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(name); err == nil {
		k := Kind(n)
		if !k.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownKind, n)
		}
		return k, nil
	}

	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)
	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}

	var f Family
	switch parts[0] {
	case "ideal":
		f = Ideal
	case "gaussian", "gauss":
		f = Gaussian
	case "butterworth", "btw":
		f = Butterworth
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}

	var p Pass
	switch parts[1] {
	case "lowpass", "low", "lp":
		p = LowPass
	case "highpass", "high", "hp":
		p = HighPass
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}

	return NewKind(f, p), nil
}
