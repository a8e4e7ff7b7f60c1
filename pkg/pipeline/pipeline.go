// Package pipeline drives the frequency-domain filtering of a selected
// image: forward transform, filter bank, inverse transform, and the two
// log-magnitude spectrum views shown next to the images.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"freqfilter/internal/models"
	"freqfilter/pkg/filter"
	"freqfilter/pkg/fourier"
)

var (
	// ErrNoImages is returned by New when there is nothing to filter.
	ErrNoImages = errors.New("pipeline: no images")

	// ErrImageIndex is returned for a selection outside the loaded images.
	ErrImageIndex = errors.New("pipeline: image index out of range")
)

// Options holds the pipeline configuration.
type Options struct {
	// Scales maps a selector index to a cutoff per filter family.
	Scales filter.Scales

	// LogDivisor rescales log-magnitudes to 8-bit display values.
	LogDivisor float64

	// CacheSpectra keeps the forward spectrum of each image so that filter
	// or cutoff changes skip the forward transform. Output is identical
	// either way.
	CacheSpectra bool

	// NumWorkers bounds the number of concurrent runs in Sweep.
	NumWorkers int

	// Verbose enables progress and diagnostic output.
	Verbose bool
}

// DefaultOptions returns the reference behaviour: no caching, one worker.
func DefaultOptions() Options {
	return Options{
		Scales:     filter.DefaultScales,
		LogDivisor: fourier.DefaultLogDivisor,
		NumWorkers: 1,
	}
}

// Selection is the user-facing state that drives a run: which image,
// which filter, and which cutoff.
type Selection struct {
	ImageIndex  int
	Kind        filter.Kind
	CutoffIndex int

	// Cutoff, when non-zero, is used as-is instead of CutoffIndex and
	// must then be a positive finite value.
	Cutoff float64
}

// Result holds everything a display collaborator needs for one run.
type Result struct {
	Selection Selection
	Params    filter.Params
	Source    models.SourceImage

	// Original is the input grid; Filtered the reconstructed output.
	Original *fourier.Grid
	Filtered *fourier.Grid

	// InputSpectrum and OutputSpectrum are shifted log-magnitude views.
	InputSpectrum  *fourier.LogGrid
	OutputSpectrum *fourier.LogGrid

	Metrics Metrics
}

// Pipeline owns the loaded images and, optionally, their spectra.
type Pipeline struct {
	images []models.SourceImage
	opts   Options

	mu    sync.Mutex
	cache map[int]*fourier.Spectrum
}

// New creates a pipeline over images. Every image must hold a valid grid
// and all grids must share the same size.
func New(images []models.SourceImage, opts Options) (*Pipeline, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	size := 0
	for i, img := range images {
		if err := img.Grid.Validate(); err != nil {
			return nil, fmt.Errorf("image %d (%s): %w", i, img.Filename, err)
		}
		if size == 0 {
			size = img.Grid.Size
		} else if img.Grid.Size != size {
			return nil, fmt.Errorf("image %d (%s): %w: side %d, expected %d",
				i, img.Filename, fourier.ErrShape, img.Grid.Size, size)
		}
	}

	if opts.LogDivisor <= 0 {
		opts.LogDivisor = fourier.DefaultLogDivisor
	}
	if opts.NumWorkers < 1 {
		opts.NumWorkers = 1
	}

	return &Pipeline{
		images: images,
		opts:   opts,
		cache:  make(map[int]*fourier.Spectrum),
	}, nil
}

// Len returns the number of loaded images.
func (p *Pipeline) Len() int {
	return len(p.images)
}

// Image returns the loaded image at index i.
func (p *Pipeline) Image(i int) (models.SourceImage, error) {
	if i < 0 || i >= len(p.images) {
		return models.SourceImage{}, fmt.Errorf("%w: %d of %d", ErrImageIndex, i, len(p.images))
	}
	return p.images[i], nil
}

// Params resolves the filter parameters of a selection. A zero Cutoff
// means unset; any other value, NaN included, is validated as given.
func (p *Pipeline) Params(sel Selection) (filter.Params, error) {
	if sel.Cutoff != 0 || math.IsNaN(sel.Cutoff) {
		params := filter.Params{Kind: sel.Kind, Cutoff: sel.Cutoff}
		return params, params.Validate()
	}
	return filter.ParamsFromIndex(sel.Kind, sel.CutoffIndex, p.opts.Scales)
}

// Run executes the full pipeline for one selection:
// forward transform → filter → inverse transform → spectrum views.
func (p *Pipeline) Run(sel Selection) (*Result, error) {
	src, err := p.Image(sel.ImageIndex)
	if err != nil {
		return nil, err
	}
	params, err := p.Params(sel)
	if err != nil {
		return nil, err
	}

	if p.opts.Verbose {
		fmt.Printf("Filtering %s with %s...\n", src.Filename, params)
	}

	// Step 1: Forward transform
	spectrum, err := p.spectrum(sel.ImageIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to transform %s: %w", src.Filename, err)
	}

	// Step 2: Apply the filter bank
	filtered, err := filter.Apply(spectrum, params)
	if err != nil {
		return nil, fmt.Errorf("failed to filter %s: %w", src.Filename, err)
	}

	// Step 3: Inverse transform
	output, residual, err := fourier.Inverse2DResidual(filtered)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct %s: %w", src.Filename, err)
	}
	if p.opts.Verbose && residual > residualWarnLevel {
		fmt.Printf("   Discarded imaginary residual of %.3g\n", residual)
	}

	// Step 4: Spectrum views for display
	inView, err := fourier.ShiftAndLogScale(spectrum)
	if err != nil {
		return nil, err
	}
	outView, err := fourier.ShiftAndLogScale(filtered)
	if err != nil {
		return nil, err
	}

	return &Result{
		Selection:      sel,
		Params:         params,
		Source:         src,
		Original:       src.Grid,
		Filtered:       output,
		InputSpectrum:  inView,
		OutputSpectrum: outView,
		Metrics:        calculateMetrics(src.Grid, output, spectrum, filtered, residual),
	}, nil
}

// residualWarnLevel is the imaginary magnitude above which a verbose run
// reports the discarded residual.
const residualWarnLevel = 1e-6

// spectrum returns the forward transform of image i, from the cache when
// caching is enabled.
func (p *Pipeline) spectrum(i int) (*fourier.Spectrum, error) {
	if !p.opts.CacheSpectra {
		return fourier.Forward2D(p.images[i].Grid)
	}

	p.mu.Lock()
	s, ok := p.cache[i]
	p.mu.Unlock()
	if ok {
		return s, nil
	}

	s, err := fourier.Forward2D(p.images[i].Grid)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[i] = s
	p.mu.Unlock()
	return s, nil
}

// Cached reports whether the spectrum of image i is cached.
func (p *Pipeline) Cached(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cache[i]
	return ok
}

// Invalidate drops every cached spectrum.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	p.cache = make(map[int]*fourier.Spectrum)
	p.mu.Unlock()
}

// DisplayGrids converts the result's spectrum views to 8-bit grids using
// the pipeline's divisor.
func (p *Pipeline) DisplayGrids(r *Result) (in, out *fourier.Grid) {
	return r.InputSpectrum.ToGrid(p.opts.LogDivisor), r.OutputSpectrum.ToGrid(p.opts.LogDivisor)
}
