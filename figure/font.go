package figure

import (
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	titlePoints = 12
	tickPoints  = 10
)

var regular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// newFace returns Go Regular at size points, or the fixed 7x13 face if the
// font cannot be loaded.
func newFace(size, dpi float64) font.Face {
	f, err := regular()
	if err == nil {
		var face font.Face
		face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}

	slog.Warn("falling back to basic font", "size", size, "error", err)
	return basicfont.Face7x13
}

// points converts a length in points to pixels.
func points(pt, dpi float64) float64 {
	return pt * dpi / 72
}
