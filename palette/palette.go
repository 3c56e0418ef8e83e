package palette

import (
	"image/color"
	"math/rand/v2"
)

// Fixed is the ordered set of marker colors handed out before any random
// color is generated.
var Fixed = []color.RGBA{
	{R: 250, G: 50, B: 50, A: 0xFF},
	{R: 50, G: 250, B: 50, A: 0xFF},
	{R: 50, G: 50, B: 250, A: 0xFF},
	{R: 250, G: 250, B: 50, A: 0xFF},
	{R: 250, G: 50, B: 250, A: 0xFF},
	{R: 50, G: 250, B: 250, A: 0xFF},
	{R: 20, G: 150, B: 250, A: 0xFF},
	{R: 150, G: 20, B: 250, A: 0xFF},
	{R: 250, G: 20, B: 150, A: 0xFF},
	{R: 250, G: 150, B: 20, A: 0xFF},
	{R: 20, G: 250, B: 150, A: 0xFF},
	{R: 150, G: 250, B: 20, A: 0xFF},
}

// Colors returns n marker colors: the first n entries of Fixed, followed by
// uniformly random colors once Fixed is exhausted.
func Colors(n int) []color.RGBA {
	return Extend(nil, Fixed, n)
}

// ColorsFrom is Colors with an explicit random source.
func ColorsFrom(r *rand.Rand, n int) []color.RGBA {
	return Extend(r, Fixed, n)
}

// Extend returns the first n colors of base, padded with random colors when
// n exceeds len(base). Each channel is drawn independently from [0, 255].
// A nil r uses the package level source.
func Extend(r *rand.Rand, base []color.RGBA, n int) []color.RGBA {
	if n <= 0 {
		return []color.RGBA{}
	}

	res := make([]color.RGBA, 0, n)
	if n <= len(base) {
		return append(res, base[:n]...)
	}
	res = append(res, base...)

	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	for range n - len(base) {
		res = append(res, color.RGBA{
			R: uint8(intN(256)),
			G: uint8(intN(256)),
			B: uint8(intN(256)),
			A: 0xFF,
		})
	}

	return res
}

// FromPalette converts a color.Palette to opaque marker colors.
func FromPalette(p color.Palette) []color.RGBA {
	res := make([]color.RGBA, len(p))
	for i, col := range p {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		res[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return res
}

// ToPalette converts marker colors to a color.Palette.
func ToPalette(cols []color.RGBA) color.Palette {
	p := make(color.Palette, len(cols))
	for i, c := range cols {
		p[i] = c
	}
	return p
}
