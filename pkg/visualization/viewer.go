package visualization

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"freqfilter/internal/models"
	"freqfilter/pkg/fourier"
	"freqfilter/pkg/imageio"
	"freqfilter/pkg/pipeline"
)

// Viewer lays out the result of a filtering run the way the interactive
// display does: the original image over its spectrum on the left, the
// filtered image over its spectrum on the right.
type Viewer struct {
	// result holds the grids of one pipeline run
	result *pipeline.Result

	// logDivisor rescales the log-magnitude spectra to 8-bit values
	logDivisor float64

	// format is the output image extension without the dot
	format string
}

// NewViewer creates a viewer for a single run
func NewViewer(result *pipeline.Result, logDivisor float64, format string) *Viewer {
	if logDivisor <= 0 {
		logDivisor = fourier.DefaultLogDivisor
	}
	if format == "" {
		format = "png"
	}
	return &Viewer{
		result:     result,
		logDivisor: logDivisor,
		format:     strings.TrimPrefix(format, "."),
	}
}

// Panel returns the grid shown in panel p
func (v *Viewer) Panel(p models.Panel) (*fourier.Grid, error) {
	switch p {
	case models.TopLeft:
		return v.result.Original, nil
	case models.TopRight:
		return v.result.Filtered, nil
	case models.BottomLeft:
		return v.result.InputSpectrum.ToGrid(v.logDivisor), nil
	case models.BottomRight:
		return v.result.OutputSpectrum.ToGrid(v.logDivisor), nil
	}
	return nil, fmt.Errorf("invalid panel: %d", int(p))
}

// Compose builds the 2N×2N display image
func (v *Viewer) Compose() (*image.Gray, error) {
	size := v.result.Original.Size
	out := image.NewGray(image.Rect(0, 0, 2*size, 2*size))

	for _, p := range models.Panels {
		g, err := v.Panel(p)
		if err != nil {
			return nil, err
		}
		if g.Size != size {
			return nil, fmt.Errorf("panel %s is %dx%d, expected %dx%d", p.Name(), g.Size, g.Size, size, size)
		}

		x, y := p.Offset(size)
		dst := image.Rect(x, y, x+size, y+size)
		xdraw.Copy(out, dst.Min, imageio.GridToImage(g), image.Rect(0, 0, size, size), xdraw.Src, nil)
	}

	return out, nil
}

// Name returns a file stem describing the run, e.g. "lena_gaussian-lowpass_c040"
func (v *Viewer) Name() string {
	stem := strings.TrimSuffix(v.result.Source.Filename, filepath.Ext(v.result.Source.Filename))
	if stem == "" {
		stem = fmt.Sprintf("image%03d", v.result.Source.Index)
	}
	return fmt.Sprintf("%s_%s_%s", stem, v.result.Params.Kind, cutoffLabel(v.result.Params.Cutoff))
}

// cutoffLabel formats a cutoff for file names: whole values are zero
// padded ("c040"), fractional ones keep every digit with the point
// written as "p" ("c12p5").
func cutoffLabel(c float64) string {
	if c == math.Trunc(c) {
		return fmt.Sprintf("c%03.0f", c)
	}
	return "c" + strings.Replace(strconv.FormatFloat(c, 'f', -1, 64), ".", "p", 1)
}

// SaveComposite saves the composed display image to path
func (v *Viewer) SaveComposite(path string) error {
	img, err := v.Compose()
	if err != nil {
		return err
	}
	return imageio.SaveImage(path, img)
}

// SavePanels saves each of the four panels as a separate image in dir
func (v *Viewer) SavePanels(dir string) error {
	for _, p := range models.Panels {
		g, err := v.Panel(p)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", v.Name(), p.Name(), v.format))
		if err := imageio.SaveImage(filename, imageio.GridToImage(g)); err != nil {
			return fmt.Errorf("failed to save panel %s: %w", p.Name(), err)
		}
	}
	return nil
}

// SaveSweep saves one composite per result into outputDir and returns the
// written paths in result order
func SaveSweep(results []*pipeline.Result, outputDir string, logDivisor float64, format string) ([]string, error) {
	paths := make([]string, 0, len(results))
	for _, res := range results {
		v := NewViewer(res, logDivisor, format)
		path := filepath.Join(outputDir, v.Name()+"."+v.format)
		if err := v.SaveComposite(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
