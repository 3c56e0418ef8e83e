package okcolor

import (
	"image/color"
	"math"
)

// LinearRGBA is a color with linear-light channels in [0, 1].
type LinearRGBA struct {
	R float64
	G float64
	B float64
	A uint16
}

var LinearRGBAModel = color.ModelFunc(linearRGBAConvert)

func linearRGBAConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LinearRGBA:
		return c
	case Lab:
		return lc.LinearRGBA()
	}

	return sRGBToLinearRGB(color.RGBA64Model.Convert(c).(color.RGBA64))
}

// RGBA clamps out of gamut channels before encoding back to sRGB.
func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return linearRGBToSRGB(lc.Clamp()).RGBA()
}

// Clamp limits every channel to [0, 1].
func (lc LinearRGBA) Clamp() LinearRGBA {
	return LinearRGBA{
		R: clamp01(lc.R),
		G: clamp01(lc.G),
		B: clamp01(lc.B),
		A: lc.A,
	}
}

// NRGBA returns the 8-bit sRGB encoding of lc.
func (lc LinearRGBA) NRGBA() color.NRGBA {
	return color.NRGBAModel.Convert(lc).(color.NRGBA)
}

func linearRGBToSRGB(lc LinearRGBA) color.RGBA64 {
	a := float64(lc.A) / 65535
	return color.RGBA64{
		R: uint16(math.Round(fromLinear(lc.R) * a * 65535)),
		G: uint16(math.Round(fromLinear(lc.G) * a * 65535)),
		B: uint16(math.Round(fromLinear(lc.B) * a * 65535)),
		A: lc.A,
	}
}

func sRGBToLinearRGB(c color.RGBA64) LinearRGBA {
	if c.A == 0 {
		return LinearRGBA{}
	}

	a := float64(c.A)
	return LinearRGBA{
		R: toLinear(float64(c.R) / a),
		G: toLinear(float64(c.G) / a),
		B: toLinear(float64(c.B) / a),
		A: c.A,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
