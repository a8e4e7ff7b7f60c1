package models

import (
	"freqfilter/pkg/fourier"
)

// SourceImage is one grayscale input accepted by the loader
type SourceImage struct {
	// Grid holds the decoded 8-bit samples
	Grid *fourier.Grid

	// Index is the position of this image in the sorted input sequence
	Index int

	// Filename is the original filename of the image
	Filename string
}

// Panel identifies one cell of the four-panel display. The left column
// shows the input, the right column the filtered result; the top row holds
// spatial images and the bottom row their shifted log spectra.
type Panel int

const (
	TopLeft Panel = iota
	TopRight
	BottomLeft
	BottomRight
)

// Panels lists every panel in display order.
var Panels = []Panel{TopLeft, TopRight, BottomLeft, BottomRight}

// Name returns a short file-friendly label for the panel.
func (p Panel) Name() string {
	switch p {
	case TopLeft:
		return "original"
	case TopRight:
		return "filtered"
	case BottomLeft:
		return "original_spectrum"
	case BottomRight:
		return "filtered_spectrum"
	}
	return "unknown"
}

// Offset returns the panel's top-left corner in a display of the given
// panel size.
func (p Panel) Offset(size int) (x, y int) {
	switch p {
	case TopRight:
		return size, 0
	case BottomLeft:
		return 0, size
	case BottomRight:
		return size, size
	}
	return 0, 0
}
