// Package imageio loads grayscale input images for the filtering pipeline
// and writes its outputs back to disk.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"freqfilter/internal/models"
	"freqfilter/pkg/fourier"
)

var (
	// ErrNoImages is returned when a directory holds no usable image.
	ErrNoImages = errors.New("imageio: no usable images found")

	// ErrSize is returned when an image is not exactly size×size.
	ErrSize = errors.New("imageio: image has wrong dimensions")

	// ErrFormat is returned when an output extension has no encoder.
	ErrFormat = errors.New("imageio: unsupported output format")
)

// supportedExt lists the extensions LoadDir picks up.
var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// LoadDir loads every supported image in dir whose dimensions are exactly
// size×size. Files are ordered by the number embedded in their name, then
// by name. Images of other dimensions are skipped with a warning when
// verbose is set.
//
// Returns:
//   - the accepted images with Index set to their position, or ErrNoImages
func LoadDir(dir string, size int, verbose bool) ([]models.SourceImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		numI, numJ := extractNumber(names[i]), extractNumber(names[j])
		if numI != numJ {
			return numI < numJ
		}
		return names[i] < names[j]
	})

	var images []models.SourceImage
	for _, name := range names {
		g, err := LoadGrid(filepath.Join(dir, name), size)
		if errors.Is(err, ErrSize) {
			if verbose {
				fmt.Printf("Warning: skipping %s: %v\n", name, err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", name, err)
		}

		images = append(images, models.SourceImage{
			Grid:     g,
			Index:    len(images),
			Filename: name,
		})
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s (need %dx%d)", ErrNoImages, dir, size, size)
	}

	if verbose {
		fmt.Printf("Loaded %d images of %dx%d from %s\n", len(images), size, size, dir)
	}
	return images, nil
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}

	if digits.Len() > 0 {
		if num, err := strconv.Atoi(digits.String()); err == nil {
			return num
		}
	}
	return 0
}

// LoadImage decodes the image at path using any registered decoder.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadGrid decodes the image at path and converts it to a size×size grid.
func LoadGrid(path string, size int) (*fourier.Grid, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		return nil, fmt.Errorf("%w: %dx%d, need %dx%d", ErrSize, b.Dx(), b.Dy(), size, size)
	}
	return ToGrid(img), nil
}

// ToGrid converts an image to grayscale samples. Non-square images are
// cropped to their smaller side; callers that need an exact shape check
// the bounds first.
func ToGrid(img image.Image) *fourier.Grid {
	b := img.Bounds()
	size := min(b.Dx(), b.Dy())
	g := fourier.NewGrid(size)

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < size; y++ {
			off := gray.PixOffset(b.Min.X, b.Min.Y+y)
			copy(g.Pix[y*size:(y+1)*size], gray.Pix[off:off+size])
		}
		return g
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			g.Pix[y*size+x] = c.Y
		}
	}
	return g
}

// GridToImage wraps a grid as an *image.Gray sharing no memory with it.
func GridToImage(g *fourier.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Size, g.Size))
	copy(img.Pix, g.Pix)
	return img
}

// SaveImage encodes img to path, choosing the format from the extension:
// .png, .jpg/.jpeg, .bmp or .tif/.tiff.
func SaveImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(*os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 90}) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	case ".tif", ".tiff":
		encode = func(f *os.File) error { return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}) }
	default:
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return file.Close()
}
