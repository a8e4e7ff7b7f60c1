package pipeline

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"freqfilter/pkg/fourier"
)

// Metrics summarises how a filter changed an image.
type Metrics struct {
	// RMSE is the root mean square difference between the original and
	// filtered samples, in 8-bit units.
	RMSE float64

	// SSIM is a global structural similarity index over the full image,
	// with samples scaled to [0, 1].
	SSIM float64

	// Correlation is the Pearson correlation between original and
	// filtered samples; 0 when either image is constant.
	Correlation float64

	// EnergyRetained is the fraction of spectral energy kept by the filter.
	EnergyRetained float64

	// ImagResidual is the largest imaginary magnitude discarded by the
	// inverse transform.
	ImagResidual float64
}

func calculateMetrics(original, filtered *fourier.Grid, in, out *fourier.Spectrum, residual float64) Metrics {
	x := original.Floats()
	y := filtered.Floats()

	m := Metrics{
		RMSE:         calculateRMSE(x, y),
		ImagResidual: residual,
	}

	floats.Scale(1.0/255, x)
	floats.Scale(1.0/255, y)
	m.SSIM = calculateSSIM(x, y)
	m.Correlation = calculateCorrelation(x, y)

	if e := in.Energy(); e > 0 {
		m.EnergyRetained = out.Energy() / e
	} else {
		m.EnergyRetained = 1
	}

	return m
}

// calculateRMSE computes the root mean square error
func calculateRMSE(original, reconstructed []float64) float64 {
	n := len(original)
	if n != len(reconstructed) || n == 0 {
		return 0
	}
	return floats.Distance(original, reconstructed, 2) / math.Sqrt(float64(n))
}

// calculateSSIM compares the input image with its filtered reconstruction
// over a single window covering the whole grid. Samples are expected in
// [0, 1]. The result is the product of a luminance term, which collapses
// once a high-pass filter removes the DC sample, and a contrast-structure
// term, which a narrow low-pass filter erodes by smoothing edges away.
func calculateSSIM(original, filtered []float64) float64 {
	if len(original) != len(filtered) || len(original) < 2 {
		return 0
	}

	// Stabilisers for a unit dynamic range, K1 = 0.01 and K2 = 0.03
	const (
		c1 = 0.01 * 0.01
		c2 = 0.03 * 0.03
	)

	muIn, varIn := stat.MeanVariance(original, nil)
	muOut, varOut := stat.MeanVariance(filtered, nil)
	cov := stat.Covariance(original, filtered, nil)

	luminance := (2*muIn*muOut + c1) / (muIn*muIn + muOut*muOut + c1)
	structure := (2*cov + c2) / (varIn + varOut + c2)
	return luminance * structure
}

// calculateCorrelation wraps stat.Correlation, which is undefined for a
// constant input.
func calculateCorrelation(x, y []float64) float64 {
	if len(x) < 2 || stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0
	}
	return stat.Correlation(x, y, nil)
}
