package visualization

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freqfilter/internal/models"
	"freqfilter/pkg/filter"
	"freqfilter/pkg/fourier"
	"freqfilter/pkg/imageio"
	"freqfilter/pkg/pipeline"
)

// runPipeline filters a 16x16 checkerboard and returns the result
func runPipeline(t *testing.T, kind filter.Kind) (*pipeline.Pipeline, *pipeline.Result) {
	t.Helper()

	size := 16
	g := fourier.NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/4+y/4)%2 == 0 {
				g.Set(y, x, 200)
			} else {
				g.Set(y, x, 40)
			}
		}
	}

	p, err := pipeline.New([]models.SourceImage{{Grid: g, Filename: "checker.png"}}, pipeline.DefaultOptions())
	require.NoError(t, err)
	res, err := p.Run(pipeline.Selection{Kind: kind, CutoffIndex: 1})
	require.NoError(t, err)
	return p, res
}

// TestCompose verifies that each panel lands in its quadrant
func TestCompose(t *testing.T) {
	_, res := runPipeline(t, filter.GaussianLowPass)
	viewer := NewViewer(res, 0, "")

	img, err := viewer.Compose()
	require.NoError(t, err)

	size := res.Original.Size
	bounds := img.Bounds()
	require.Equal(t, 2*size, bounds.Dx())
	require.Equal(t, 2*size, bounds.Dy())

	for _, p := range models.Panels {
		panel, err := viewer.Panel(p)
		require.NoError(t, err, p.Name())

		ox, oy := p.Offset(size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				require.Equal(t, panel.At(y, x), img.GrayAt(ox+x, oy+y).Y, "%s (%d,%d)", p.Name(), x, y)
			}
		}
	}
}

func TestPanelsMatchResult(t *testing.T) {
	_, res := runPipeline(t, filter.IdealHighPass)
	viewer := NewViewer(res, fourier.DefaultLogDivisor, "png")

	tl, err := viewer.Panel(models.TopLeft)
	require.NoError(t, err)
	assert.Same(t, res.Original, tl)

	tr, err := viewer.Panel(models.TopRight)
	require.NoError(t, err)
	assert.Same(t, res.Filtered, tr)

	// DC is removed by the high-pass filter
	br, err := viewer.Panel(models.BottomRight)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), br.At(8, 8))

	bl, err := viewer.Panel(models.BottomLeft)
	require.NoError(t, err)
	assert.NotZero(t, bl.At(8, 8))

	_, err = viewer.Panel(models.Panel(9))
	assert.Error(t, err)
}

func TestNameKeepsFractionalCutoffs(t *testing.T) {
	named := func(cutoff float64) string {
		res := &pipeline.Result{
			Source: models.SourceImage{Filename: "lena.png"},
			Params: filter.Params{Kind: filter.GaussianLowPass, Cutoff: cutoff},
		}
		return NewViewer(res, 0, "").Name()
	}

	assert.Equal(t, "lena_gaussian-lowpass_c040", named(40))
	assert.Equal(t, "lena_gaussian-lowpass_c12p3", named(12.3))
	assert.NotEqual(t, named(12.3), named(12.4))
	assert.NotEqual(t, named(12), named(12.5))

	anonymous := &pipeline.Result{
		Source: models.SourceImage{Index: 7},
		Params: filter.Params{Kind: filter.IdealHighPass, Cutoff: 100},
	}
	assert.Equal(t, "image007_ideal-highpass_c100", NewViewer(anonymous, 0, "").Name())
}

func TestSavePanelsAndComposite(t *testing.T) {
	_, res := runPipeline(t, filter.ButterworthLowPass)
	viewer := NewViewer(res, 0, ".bmp")
	dir := t.TempDir()

	assert.Equal(t, "checker_butterworth-lowpass_c020", viewer.Name())

	require.NoError(t, viewer.SavePanels(dir))
	for _, p := range models.Panels {
		path := filepath.Join(dir, viewer.Name()+"_"+p.Name()+".bmp")
		_, err := os.Stat(path)
		assert.NoError(t, err, "panel file %s", path)
	}

	composite := filepath.Join(dir, "display.png")
	require.NoError(t, viewer.SaveComposite(composite))

	img, err := imageio.LoadImage(composite)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestSaveSweep(t *testing.T) {
	p, _ := runPipeline(t, filter.IdealLowPass)
	results, err := p.Sweep(context.Background(), pipeline.Selections(0, filter.Kinds, []int{0, 1}))
	require.NoError(t, err)

	paths, err := SaveSweep(results, t.TempDir(), 0, "png")
	require.NoError(t, err)
	require.Len(t, paths, len(results))

	seen := make(map[string]bool)
	for _, path := range paths {
		assert.False(t, seen[path], "duplicate output path %s", path)
		seen[path] = true
		_, err := os.Stat(path)
		assert.NoError(t, err, "missing output %s", path)
	}
}
