// Package cmap maps scalar intensities to display colors. Maps only apply to
// grayscale images, color images are shown as they are.
//
// viridis, plasma, inferno and magma are approximations: eight or nine
// samples of the published maps, interpolated in OkLab. They match the
// originals at the sampled stops and stay within a few levels in between.
package cmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"sort"
	"strings"

	"picshow/okcolor"
)

// Default is used for grayscale images when no map is requested.
const Default = "viridis"

var ErrUnknown = errors.New("unknown color map")

// Map converts t in [0, 1] to a color.
type Map interface {
	At(t float64) color.NRGBA
	Name() string
}

type stop struct {
	pos float64
	col color.NRGBA
}

// gradient interpolates between stops, either in OkLab or directly on the
// sRGB channels.
type gradient struct {
	name       string
	stops      []stop
	perceptual bool
	labs       []okcolor.Lab
}

func newGradient(name string, perceptual bool, stops ...stop) *gradient {
	g := &gradient{name: name, stops: stops, perceptual: perceptual}
	if perceptual {
		g.labs = make([]okcolor.Lab, len(stops))
		for i, s := range stops {
			g.labs[i] = okcolor.LabModel.Convert(s.col).(okcolor.Lab)
		}
	}
	return g
}

func (g *gradient) Name() string {
	return g.name
}

func (g *gradient) At(t float64) color.NRGBA {
	if math.IsNaN(t) || t <= g.stops[0].pos {
		return g.stops[0].col
	}
	last := len(g.stops) - 1
	if t >= g.stops[last].pos {
		return g.stops[last].col
	}

	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].pos >= t })
	lo, hi := g.stops[i-1], g.stops[i]
	f := (t - lo.pos) / (hi.pos - lo.pos)

	if g.perceptual {
		return okcolor.Mix(g.labs[i-1], g.labs[i], f).LinearRGBA().NRGBA()
	}
	return color.NRGBA{
		R: lerp8(lo.col.R, hi.col.R, f),
		G: lerp8(lo.col.G, hi.col.G, f),
		B: lerp8(lo.col.B, hi.col.B, f),
		A: lerp8(lo.col.A, hi.col.A, f),
	}
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

type reversed struct {
	Map
}

func (r reversed) At(t float64) color.NRGBA {
	return r.Map.At(1 - t)
}

func (r reversed) Name() string {
	return r.Map.Name() + "_r"
}

// Lookup returns the map called name. A "_r" suffix reverses any map.
func Lookup(name string) (Map, error) {
	if m, ok := maps[name]; ok {
		return m, nil
	}

	if base, ok := strings.CutSuffix(name, "_r"); ok {
		if m, ok := maps[base]; ok {
			return reversed{m}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

// Names lists the registered maps, without their reversed variants.
func Names() []string {
	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsGray reports whether img is a single channel image.
func IsGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}

// Apply maps a grayscale img through m, autoscaling its values to the
// min..max range found in the image. Other images are returned unchanged.
func Apply(m Map, img image.Image) image.Image {
	if !IsGray(img) {
		return img
	}

	b := img.Bounds()
	lo, hi := uint16(math.MaxUint16), uint16(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := grayAt(img, x, y)
			lo, hi = min(lo, v), max(hi, v)
		}
	}

	span := float64(hi) - float64(lo)
	dest := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var t float64
			if span > 0 {
				t = (float64(grayAt(img, x, y)) - float64(lo)) / span
			}
			dest.SetNRGBA(x, y, m.At(t))
		}
	}
	return dest
}

func grayAt(img image.Image, x, y int) uint16 {
	switch g := img.(type) {
	case *image.Gray:
		return uint16(g.GrayAt(x, y).Y) * 0x101
	case *image.Gray16:
		return g.Gray16At(x, y).Y
	}
	return color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
}
