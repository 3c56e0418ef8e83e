package figure

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

type rect struct {
	x, y, w, h float64
}

func (r rect) empty() bool {
	return r.w < 1 || r.h < 1
}

func (r rect) inset(left, top, right, bottom float64) rect {
	return rect{x: r.x + left, y: r.y + top, w: r.w - left - right, h: r.h - top - bottom}
}

// fitRect centers src's aspect ratio inside area, as large as it fits.
func fitRect(src image.Rectangle, area rect) image.Rectangle {
	srcWidth := float64(src.Dx())
	srcHeight := float64(src.Dy())
	if srcWidth == 0 || srcHeight == 0 || area.empty() {
		return image.Rectangle{}
	}

	srcAR := srcWidth / srcHeight
	areaAR := area.w / area.h

	destWidth, destHeight := area.w, area.h
	if srcAR < areaAR {
		destWidth = area.h * srcAR
	} else if srcAR > areaAR {
		destHeight = area.w / srcAR
	}

	x0 := area.x + (area.w-destWidth)/2
	y0 := area.y + (area.h-destHeight)/2
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+destWidth)), int(math.Round(y0+destHeight)),
	)
}

// scale resamples img to size, blocky when enlarging so single pixels stay
// visible.
func scale(logger *slog.Logger, img image.Image, size image.Point) *image.NRGBA {
	srcBounds := img.Bounds()
	dest := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))

	var interp draw.Interpolator = draw.CatmullRom
	if size.X >= srcBounds.Dx() && size.Y >= srcBounds.Dy() {
		interp = draw.NearestNeighbor
	}

	logger.Debug("scaling", "from", srcBounds.Size(), "to", size)
	interp.Scale(dest, dest.Bounds(), img, srcBounds, draw.Src, nil)
	return dest
}
