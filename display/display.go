// Package display shows images and point annotations while developing image
// code. Every call renders a fresh figure and flushes it to a surface; an
// image source is either a file path or an image.Image.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"picshow/figure"
	"picshow/palette"
	"picshow/source"
)

var (
	ErrTooManyImages = errors.New("more images than grid cells")
	ErrInvalidGrid   = errors.New("grid needs at least one row and one column")
	ErrTitleCount    = errors.New("title count does not match image count")
)

// Point is a marker position in pixels, (0, 0) being the top left corner.
type Point struct {
	X, Y float64
}

// ShowImage displays a single image.
func ShowImage(src any, opts ...Option) error {
	cfg := newConfig(Size{Width: 20, Height: 20}, opts)

	fig, err := imageFigure(src, cfg)
	if err != nil {
		return err
	}
	return show(fig, cfg)
}

func imageFigure(src any, cfg *config) (*figure.Figure, error) {
	images, err := source.Read(src)
	if err != nil {
		return nil, err
	}

	var title string
	if len(cfg.titles) > 0 {
		title = cfg.titles[0]
	}

	fig := cfg.newFigure()
	if err := addImage(fig, 1, 1, 1, images[0], title, cfg); err != nil {
		return nil, err
	}
	return fig, nil
}

// SubplotImages displays srcs in a rows x cols grid, filled row by row.
func SubplotImages(srcs []any, rows, cols int, opts ...Option) error {
	cfg := newConfig(Size{Width: 20, Height: 20}, opts)

	fig, err := gridFigure(srcs, rows, cols, cfg)
	if err != nil {
		return err
	}
	return show(fig, cfg)
}

func gridFigure(srcs []any, rows, cols int, cfg *config) (*figure.Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}
	if len(srcs) > rows*cols {
		return nil, fmt.Errorf("%w: %d images, %dx%d grid", ErrTooManyImages, len(srcs), rows, cols)
	}

	titles, err := gridTitles(cfg.titles, len(srcs))
	if err != nil {
		return nil, err
	}

	fig := cfg.newFigure()
	images, err := source.Read(srcs...)
	if err != nil {
		return nil, err
	}

	for i, img := range images {
		if err := addImage(fig, rows, cols, i+1, img, titles[i], cfg); err != nil {
			return nil, err
		}
		fig.TightLayout(cfg.wPad, cfg.hPad)
	}
	return fig, nil
}

// gridTitles spreads no title or a single title over n images.
func gridTitles(titles []string, n int) ([]string, error) {
	switch len(titles) {
	case 0, 1:
		var title string
		if len(titles) == 1 {
			title = titles[0]
		}
		res := make([]string, n)
		for i := range res {
			res[i] = title
		}
		return res, nil
	case n:
		return titles, nil
	default:
		return nil, fmt.Errorf("%w: %d titles for %d images", ErrTitleCount, len(titles), n)
	}
}

func addImage(fig *figure.Figure, rows, cols, index int, img image.Image, title string, cfg *config) error {
	ax, err := fig.Subplot(rows, cols, index)
	if err != nil {
		return err
	}

	ax.SetTitle(title)
	if !cfg.axis {
		ax.AxisOff()
	}
	if err := ax.Imshow(img, cfg.cmap); err != nil {
		return fmt.Errorf("could not show image %d: %w", index, err)
	}
	return nil
}

// DrawPoints stamps a filled disc at every point of a copy of src; src
// itself is never modified. Inline, the copy is displayed and nil is
// returned. Otherwise the copy is returned without displaying anything.
//
// The copy is always a color image so markers keep their colors. A
// grayscale src is therefore shown as gray pixels and WithCmap has no
// effect on it.
func DrawPoints(src any, points []Point, opts ...Option) (*image.NRGBA, error) {
	cfg := newConfig(Size{Width: 20, Height: 30}, opts)

	images, err := source.Read(src)
	if err != nil {
		return nil, err
	}

	marked := imaging.Clone(images[0])
	colors := markerColors(cfg, len(points))
	slog.Debug("drawing points", "points", len(points), "diameter", cfg.diameter, "bounds", marked.Bounds())
	for i, p := range points {
		if !reaches(p, marked.Bounds(), cfg.diameter/2) {
			continue
		}
		stamp(marked, int(p.X), int(p.Y), cfg.diameter, colors[i])
	}

	if !cfg.inline {
		return marked, nil
	}

	fig := cfg.newFigure()
	if err := addImage(fig, 1, 1, 1, marked, "", cfg); err != nil {
		return nil, err
	}
	return nil, show(fig, cfg)
}

// markerColors returns one color per point: the configured color for all of
// them, or palette colors when no color is set.
func markerColors(cfg *config, n int) []color.NRGBA {
	res := make([]color.NRGBA, n)
	if cfg.color != nil {
		c := color.NRGBAModel.Convert(cfg.color).(color.NRGBA)
		for i := range res {
			res[i] = c
		}
		return res
	}

	for i, c := range palette.Extend(cfg.rng, cfg.palette, n) {
		res[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return res
}

// reaches reports whether a disc of radius r at p can touch b. Points that
// are not finite never do.
func reaches(p Point, b image.Rectangle, r int) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	reach := float64(r + 1)
	return p.X > float64(b.Min.X)-reach && p.X < float64(b.Max.X)+reach &&
		p.Y > float64(b.Min.Y)-reach && p.Y < float64(b.Max.Y)+reach
}

// stamp fills the disc of the given diameter centered on (cx, cy), clipped
// to img.
func stamp(img *image.NRGBA, cx, cy, diameter int, c color.NRGBA) {
	if diameter < 0 {
		return
	}

	r := diameter / 2
	area := image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(img.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		dy := y - cy
		for x := area.Min.X; x < area.Max.X; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func show(fig *figure.Figure, cfg *config) error {
	target, err := cfg.target()
	if err != nil {
		return err
	}

	img, err := fig.Render()
	if err != nil {
		return fmt.Errorf("could not render figure: %w", err)
	}

	if err := target.Show(img); err != nil {
		return fmt.Errorf("could not display figure: %w", err)
	}
	return nil
}
