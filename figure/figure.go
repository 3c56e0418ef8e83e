// Package figure lays images out on a canvas: one or more subplots arranged
// in a grid, each with an optional title and optional pixel axes.
package figure

import (
	"errors"
	"fmt"
	"image"
	"math"

	"picshow/cmap"
)

var ErrSubplotIndex = errors.New("invalid subplot index")

// Default layout values, in units of the tick font size.
const (
	DefaultDPI  = 100
	outerPad    = 1.08
	defaultWPad = 1
	defaultHPad = 1
)

type Figure struct {
	width, height int
	dpi           float64
	wPad, hPad    float64
	axes          []*Axes
}

// New creates an empty figure of width x height inches.
func New(width, height, dpi float64) *Figure {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Figure{
		width:  max(1, int(math.Round(width*dpi))),
		height: max(1, int(math.Round(height*dpi))),
		dpi:    dpi,
		wPad:   defaultWPad,
		hPad:   defaultHPad,
	}
}

// Size returns the canvas size in pixels.
func (f *Figure) Size() (int, int) {
	return f.width, f.height
}

func (f *Figure) DPI() float64 {
	return f.dpi
}

// Axes returns the subplots in creation order.
func (f *Figure) Axes() []*Axes {
	return f.axes
}

// TightLayout sets the padding between adjacent subplots.
func (f *Figure) TightLayout(wPad, hPad float64) {
	f.wPad, f.hPad = max(0, wPad), max(0, hPad)
}

// Subplot adds the index-th cell of a rows x cols grid. Cells are numbered
// from 1, row by row.
func (f *Figure) Subplot(rows, cols, index int) (*Axes, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrSubplotIndex, rows, cols)
	}
	if index < 1 || index > rows*cols {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrSubplotIndex, index, rows*cols)
	}

	a := &Axes{rows: rows, cols: cols, index: index, axis: true}
	f.axes = append(f.axes, a)
	return a, nil
}

type Axes struct {
	rows, cols, index int
	title             string
	axis              bool
	img               image.Image
}

// Cell returns the zero based row and column of the subplot.
func (a *Axes) Cell() (int, int) {
	return (a.index - 1) / a.cols, (a.index - 1) % a.cols
}

func (a *Axes) SetTitle(title string) {
	a.title = title
}

func (a *Axes) Title() string {
	return a.title
}

// AxisOff hides the frame, ticks and tick labels.
func (a *Axes) AxisOff() {
	a.axis = false
}

func (a *Axes) AxisVisible() bool {
	return a.axis
}

// Image returns the image as it will be drawn, after any color map.
func (a *Axes) Image() image.Image {
	return a.img
}

// Imshow sets the image of the subplot. The color map named cmapName is
// only applied to grayscale images; grayscale images without one use
// cmap.Default. An unknown name is an error whatever the image.
func (a *Axes) Imshow(img image.Image, cmapName string) error {
	var m cmap.Map
	if cmapName != "" {
		var err error
		if m, err = cmap.Lookup(cmapName); err != nil {
			return err
		}
	}

	if cmap.IsGray(img) {
		if m == nil {
			var err error
			if m, err = cmap.Lookup(cmap.Default); err != nil {
				return err
			}
		}
		img = cmap.Apply(m, img)
	}

	a.img = img
	return nil
}
