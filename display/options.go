package display

import (
	"image/color"
	"math/rand/v2"

	"picshow/figure"
	"picshow/palette"
	"picshow/surface"
)

// Size is a figure size in inches.
type Size struct {
	Width, Height float64
}

type config struct {
	figSize    Size
	dpi        float64
	titles     []string
	cmap       string
	axis       bool
	wPad, hPad float64
	diameter   int
	color      color.Color
	palette    []color.RGBA
	rng        *rand.Rand
	inline     bool
	surface    surface.Surface
}

// Option customizes a display call.
type Option func(*config)

func newConfig(figSize Size, opts []Option) *config {
	cfg := &config{
		figSize:  figSize,
		dpi:      figure.DefaultDPI,
		wPad:     1,
		hPad:     1,
		diameter: 10,
		color:    color.RGBA{R: 50, G: 250, B: 50, A: 0xFF},
		palette:  palette.Fixed,
		inline:   true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithFigSize sets the figure size in inches.
func WithFigSize(width, height float64) Option {
	return func(c *config) {
		c.figSize = Size{Width: width, Height: height}
	}
}

// WithDPI sets the number of canvas pixels per inch.
func WithDPI(dpi float64) Option {
	return func(c *config) {
		c.dpi = dpi
	}
}

// WithTitle sets one title, shared by every image of a grid.
func WithTitle(title string) Option {
	return func(c *config) {
		c.titles = []string{title}
	}
}

// WithTitles sets one title per image. A single title is shared.
func WithTitles(titles ...string) Option {
	return func(c *config) {
		c.titles = titles
	}
}

// WithCmap names the color map used for grayscale images, like "gray" or
// "Greys_r".
func WithCmap(name string) Option {
	return func(c *config) {
		c.cmap = name
	}
}

// WithAxis shows or hides the frame and pixel coordinate ticks.
func WithAxis(visible bool) Option {
	return func(c *config) {
		c.axis = visible
	}
}

// WithLayoutPad sets the padding between grid images, in font sizes.
func WithLayoutPad(width, height float64) Option {
	return func(c *config) {
		c.wPad, c.hPad = width, height
	}
}

// WithDiameter sets the marker diameter in pixels.
func WithDiameter(d int) Option {
	return func(c *config) {
		c.diameter = d
	}
}

// WithColor draws every marker in col. A nil col colors each marker from
// the palette, as WithPaletteColors does.
func WithColor(col color.Color) Option {
	return func(c *config) {
		c.color = col
	}
}

// WithPaletteColors gives every marker its own palette color.
func WithPaletteColors() Option {
	return WithColor(nil)
}

// WithPalette replaces palette.Fixed as the colors handed out before
// random ones.
func WithPalette(base []color.RGBA) Option {
	return func(c *config) {
		c.palette = base
	}
}

// WithRand sets the random source for palette colors past the fixed ones.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithInline chooses between showing the marked image (true) and returning
// it (false).
func WithInline(inline bool) Option {
	return func(c *config) {
		c.inline = inline
	}
}

// WithSurface sends the figure to s instead of surface.Default.
func WithSurface(s surface.Surface) Option {
	return func(c *config) {
		c.surface = s
	}
}

func (c *config) newFigure() *figure.Figure {
	return figure.New(c.figSize.Width, c.figSize.Height, c.dpi)
}

func (c *config) target() (surface.Surface, error) {
	if c.surface != nil {
		return c.surface, nil
	}
	return surface.Default()
}
