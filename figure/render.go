package figure

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const (
	titleGap   = 6   // points between the image and its title
	tickLength = 3.5 // points
	tickGap    = 3.5 // points between a tick and its label
	frameWidth = 0.8 // points
	maxTicks   = 6
)

type renderer struct {
	dc        *gg.Context
	dpi       float64
	fontPx    float64
	titleFace font.Face
	tickFace  font.Face
	logger    *slog.Logger
}

// Render draws every subplot onto a white canvas.
func (f *Figure) Render() (image.Image, error) {
	r := &renderer{
		dc:        gg.NewContext(f.width, f.height),
		dpi:       f.dpi,
		fontPx:    points(tickPoints, f.dpi),
		titleFace: newFace(titlePoints, f.dpi),
		tickFace:  newFace(tickPoints, f.dpi),
		logger:    slog.Default().With("width", f.width, "height", f.height),
	}

	r.dc.SetColor(color.White)
	r.dc.Clear()

	for _, a := range f.axes {
		cell := f.cell(a, r.fontPx)
		if cell.empty() {
			r.logger.Warn("subplot does not fit the figure", "index", a.index, "rows", a.rows, "cols", a.cols)
			continue
		}
		r.drawAxes(a, cell)
	}

	return r.dc.Image(), nil
}

// cell returns the area of the grid slot of a, before titles and ticks.
func (f *Figure) cell(a *Axes, fontPx float64) rect {
	outer := outerPad * fontPx
	wGap := f.wPad * fontPx
	hGap := f.hPad * fontPx

	cellWidth := (float64(f.width) - 2*outer - float64(a.cols-1)*wGap) / float64(a.cols)
	cellHeight := (float64(f.height) - 2*outer - float64(a.rows-1)*hGap) / float64(a.rows)

	row, col := a.Cell()
	return rect{
		x: outer + float64(col)*(cellWidth+wGap),
		y: outer + float64(row)*(cellHeight+hGap),
		w: cellWidth,
		h: cellHeight,
	}
}

func (r *renderer) drawAxes(a *Axes, cell rect) {
	area := cell
	if a.title != "" {
		r.dc.SetFontFace(r.titleFace)
		area = area.inset(0, r.dc.FontHeight()+points(titleGap, r.dpi), 0, 0)
	}

	var labelWidth float64
	if a.axis {
		r.dc.SetFontFace(r.tickFace)
		labelWidth = r.tickLabelWidth(a.img)
		tick := points(tickLength+tickGap, r.dpi)
		area = area.inset(labelWidth+tick, 0, labelWidth/2, r.dc.FontHeight()+tick)
	}

	if area.empty() {
		return
	}

	dest := image.Rectangle{
		Min: image.Pt(int(math.Round(area.x)), int(math.Round(area.y))),
		Max: image.Pt(int(math.Round(area.x+area.w)), int(math.Round(area.y+area.h))),
	}
	if a.img != nil {
		dest = fitRect(a.img.Bounds(), area)
		if dest.Empty() {
			return
		}
		r.dc.DrawImage(scale(r.logger, a.img, dest.Size()), dest.Min.X, dest.Min.Y)
	}

	if a.title != "" {
		r.dc.SetFontFace(r.titleFace)
		r.dc.SetColor(color.Black)
		r.dc.DrawStringAnchored(a.title, float64(dest.Min.X+dest.Max.X)/2,
			float64(dest.Min.Y)-points(titleGap, r.dpi), 0.5, 0)
	}

	if a.axis {
		r.drawFrame(dest, a.img, labelWidth)
	}
}

func (r *renderer) tickLabelWidth(img image.Image) float64 {
	extent := 1
	if img != nil {
		extent = max(img.Bounds().Dx(), img.Bounds().Dy())
	}
	w, _ := r.dc.MeasureString(strconv.Itoa(extent))
	return w
}

func (r *renderer) drawFrame(dest image.Rectangle, img image.Image, labelWidth float64) {
	r.dc.SetFontFace(r.tickFace)
	r.dc.SetColor(color.Black)
	r.dc.SetLineWidth(points(frameWidth, r.dpi))
	r.dc.DrawRectangle(float64(dest.Min.X), float64(dest.Min.Y), float64(dest.Dx()), float64(dest.Dy()))
	r.dc.Stroke()

	if img == nil {
		return
	}

	size := img.Bounds().Size()
	px := float64(dest.Dx()) / float64(size.X)
	tick := points(tickLength, r.dpi)
	gap := points(tickGap, r.dpi)
	spacing := max(labelWidth*2, r.fontPx*3)

	bottom := float64(dest.Max.Y)
	for _, v := range ticks(size.X, int(float64(dest.Dx())/spacing)) {
		x := float64(dest.Min.X) + (float64(v)+0.5)*px
		r.dc.DrawLine(x, bottom, x, bottom+tick)
		r.dc.Stroke()
		r.dc.DrawStringAnchored(strconv.Itoa(v), x, bottom+tick+gap, 0.5, 1)
	}

	left := float64(dest.Min.X)
	for _, v := range ticks(size.Y, int(float64(dest.Dy())/spacing)) {
		y := float64(dest.Min.Y) + (float64(v)+0.5)*px
		r.dc.DrawLine(left-tick, y, left, y)
		r.dc.Stroke()
		r.dc.DrawStringAnchored(strconv.Itoa(v), left-tick-gap, y, 1, 0.5)
	}
}

// ticks returns pixel coordinates in [0, extent) at a 1, 2 or 5 times a
// power of ten step, at most n+1 of them.
func ticks(extent, n int) []int {
	if extent <= 0 {
		return nil
	}
	n = max(1, min(n, maxTicks))

	step := niceStep(float64(extent) / float64(n))
	var res []int
	for v := 0; v < extent; v += step {
		res = append(res, v)
	}
	return res
}

func niceStep(raw float64) int {
	if raw <= 1 {
		return 1
	}

	pow10 := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*pow10 >= raw {
			return int(m * pow10)
		}
	}
	return int(10 * pow10)
}
