package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"picshow/cmap"
	"picshow/palette"
	"picshow/source"
)

type recorder struct {
	shown []image.Image
}

func (r *recorder) Show(img image.Image) error {
	r.shown = append(r.shown, img)
	return nil
}

func background(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{R: 10, G: 20, B: 30, A: 255}}, image.Point{}, draw.Src)
	return img
}

func near(x, y int, points []Point, r int) bool {
	for _, p := range points {
		dx, dy := x-int(p.X), y-int(p.Y)
		if dx*dx+dy*dy <= r*r {
			return true
		}
	}
	return false
}

func TestDrawPointsReturnsMarkedCopy(t *testing.T) {
	img := background(60, 40)
	orig := bytes.Clone(img.Pix)
	points := []Point{{X: 10.9, Y: 10.2}, {X: 45, Y: 30}}

	rec := &recorder{}
	got, err := DrawPoints(img, points, WithInline(false), WithDiameter(6), WithSurface(rec))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if len(rec.shown) != 0 {
		t.Errorf("figure displayed with inline disabled")
	}

	if !bytes.Equal(img.Pix, orig) {
		t.Fatal("caller's image was modified")
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}

	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			changed := got.NRGBAAt(x, y) != img.NRGBAAt(x, y)
			if changed != near(x, y, points, 3) {
				t.Fatalf("pixel (%d,%d) changed = %v, marker = %v", x, y, changed, near(x, y, points, 3))
			}
		}
	}

	// coordinates are truncated, not rounded
	if got.NRGBAAt(10, 10) == img.NRGBAAt(10, 10) {
		t.Errorf("marker center (10,10) not stamped")
	}
	if got.NRGBAAt(14, 10) != img.NRGBAAt(14, 10) {
		t.Errorf("pixel (14,10) stamped, marker center was rounded")
	}
}

func TestDrawPointsFixedColor(t *testing.T) {
	red := color.RGBA{R: 250, G: 50, B: 50, A: 255}
	points := []Point{{5, 5}, {20, 5}, {35, 5}}

	got, err := DrawPoints(background(40, 10), points, WithInline(false), WithColor(red), WithDiameter(2))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}

	want := color.NRGBA{R: 250, G: 50, B: 50, A: 255}
	for _, p := range points {
		if c := got.NRGBAAt(int(p.X), int(p.Y)); c != want {
			t.Errorf("point %v color = %v, want %v", p, c, want)
		}
	}
}

func TestDrawPointsDefaultColor(t *testing.T) {
	got, err := DrawPoints(background(10, 10), []Point{{5, 5}}, WithInline(false))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if c := got.NRGBAAt(5, 5); c != (color.NRGBA{R: 50, G: 250, B: 50, A: 255}) {
		t.Errorf("default marker color = %v", c)
	}
}

func TestDrawPointsPaletteColors(t *testing.T) {
	var points []Point
	for i := range 13 {
		points = append(points, Point{X: float64(5 + i*10), Y: 5})
	}

	got, err := DrawPoints(background(140, 10), points,
		WithInline(false), WithPaletteColors(), WithDiameter(2), WithRand(rand.New(rand.NewPCG(3, 4))))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}

	want := palette.ColorsFrom(rand.New(rand.NewPCG(3, 4)), len(points))
	for i, p := range points {
		c := got.NRGBAAt(int(p.X), int(p.Y))
		w := want[i]
		if c != (color.NRGBA{R: w.R, G: w.G, B: w.B, A: 255}) {
			t.Errorf("point %d color = %v, want %v", i, c, w)
		}
	}

	if c := got.NRGBAAt(5, 5); c != (color.NRGBA{R: 250, G: 50, B: 50, A: 255}) {
		t.Errorf("first point color = %v, want first palette entry", c)
	}
}

func TestDrawPointsCustomPalette(t *testing.T) {
	base := []color.RGBA{{R: 1, G: 2, B: 3, A: 255}}
	got, err := DrawPoints(background(10, 10), []Point{{2, 2}}, WithInline(false), WithColor(nil), WithPalette(base))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if c := got.NRGBAAt(2, 2); c != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("marker color = %v, want custom palette entry", c)
	}
}

func TestDrawPointsLaterPointsWin(t *testing.T) {
	first := color.NRGBA{R: 250, G: 50, B: 50, A: 255}
	second := color.NRGBA{R: 50, G: 250, B: 50, A: 255}
	got, err := DrawPoints(background(20, 20), []Point{{10, 10}, {12, 10}}, WithInline(false), WithPaletteColors(), WithDiameter(8))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}

	if c := got.NRGBAAt(11, 10); c != second {
		t.Errorf("overlap pixel = %v, want second marker %v", c, second)
	}
	if c := got.NRGBAAt(7, 10); c != first {
		t.Errorf("first marker only pixel = %v, want %v", c, first)
	}
}

func TestDrawPointsClipsToImage(t *testing.T) {
	got, err := DrawPoints(background(8, 8), []Point{{-2, -2}, {7.5, 7.5}, {100, 100}}, WithInline(false), WithDiameter(6))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if c := got.NRGBAAt(0, 0); c.G != 250 {
		t.Errorf("corner pixel = %v, want marker", c)
	}
}

func TestDrawPointsSkipsUnreachablePoints(t *testing.T) {
	img := background(10, 10)
	points := []Point{
		{X: -9.223372036854775808e18, Y: 5},
		{X: 5, Y: 9.3e18},
		{X: math.NaN(), Y: 5},
		{X: 5, Y: math.Inf(-1)},
		{X: math.Inf(1), Y: math.Inf(1)},
		{X: -20, Y: 5},
	}

	got, err := DrawPoints(img, points, WithInline(false), WithDiameter(6))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if !bytes.Equal(got.Pix, img.Pix) {
		t.Error("points far outside the image stamped pixels")
	}
}

func TestDrawPointsGrayInput(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	got, err := DrawPoints(gray, []Point{{5, 5}}, WithInline(false), WithCmap("jet"))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if c := got.NRGBAAt(5, 5); c != (color.NRGBA{R: 50, G: 250, B: 50, A: 255}) {
		t.Errorf("marker = %v, want default color", c)
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{A: 255}) {
		t.Errorf("background = %v, want black", c)
	}
}

func TestDrawPointsInline(t *testing.T) {
	rec := &recorder{}
	got, err := DrawPoints(background(16, 16), []Point{{3, 3}}, WithSurface(rec), WithFigSize(1, 2), WithDPI(40))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if got != nil {
		t.Errorf("inline call returned an image")
	}
	if len(rec.shown) != 1 {
		t.Fatalf("shown %d figures, want 1", len(rec.shown))
	}
	if b := rec.shown[0].Bounds(); b.Dx() != 40 || b.Dy() != 80 {
		t.Errorf("figure = %v, want 40x80", b)
	}
}

func TestDrawPointsFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, background(12, 12)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := DrawPoints(path, []Point{{6, 6}}, WithInline(false), WithDiameter(2))
	if err != nil {
		t.Fatalf("DrawPoints: %v", err)
	}
	if c := got.NRGBAAt(6, 6); c != (color.NRGBA{R: 50, G: 250, B: 50, A: 255}) {
		t.Errorf("marker = %v", c)
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("background = %v", c)
	}

	if _, err := DrawPoints(filepath.Join(t.TempDir(), "missing.png"), nil, WithInline(false)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShowImage(t *testing.T) {
	rec := &recorder{}
	err := ShowImage(background(30, 20), WithSurface(rec), WithFigSize(2, 1), WithDPI(50), WithTitle("frame"), WithAxis(true))
	if err != nil {
		t.Fatalf("ShowImage: %v", err)
	}
	if len(rec.shown) != 1 {
		t.Fatalf("shown %d figures, want 1", len(rec.shown))
	}
	if b := rec.shown[0].Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("figure = %v, want 100x50", b)
	}
}

func TestShowImageFigure(t *testing.T) {
	cfg := newConfig(Size{Width: 1, Height: 1}, []Option{WithTitle("one"), WithCmap("gray")})
	fig, err := imageFigure(image.NewGray(image.Rect(0, 0, 4, 4)), cfg)
	if err != nil {
		t.Fatalf("imageFigure: %v", err)
	}

	axes := fig.Axes()
	if len(axes) != 1 {
		t.Fatalf("got %d axes, want 1", len(axes))
	}
	if axes[0].Title() != "one" {
		t.Errorf("title = %q", axes[0].Title())
	}
	if axes[0].AxisVisible() {
		t.Errorf("axes visible by default")
	}
	if _, ok := axes[0].Image().(*image.NRGBA); !ok {
		t.Errorf("grayscale image not color mapped: %T", axes[0].Image())
	}
}

func TestShowImageGrayFileStaysGray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range gray.Pix {
		gray.Pix[i] = 200
	}
	path := filepath.Join(t.TempDir(), "gray.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gray); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	want := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	for _, name := range []string{"", "jet"} {
		cfg := newConfig(Size{Width: 1, Height: 1}, []Option{WithDPI(50), WithCmap(name)})
		fig, err := imageFigure(path, cfg)
		if err != nil {
			t.Fatalf("imageFigure(cmap %q): %v", name, err)
		}
		if c := fig.Axes()[0].Image().At(4, 4); c != want {
			t.Errorf("cmap %q: axes pixel = %v, want %v", name, c, want)
		}

		rendered, err := fig.Render()
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if r, g, b, _ := rendered.At(25, 25).RGBA(); r>>8 != 200 || g>>8 != 200 || b>>8 != 200 {
			t.Errorf("cmap %q: rendered pixel = (%d,%d,%d), want gray 200", name, r>>8, g>>8, b>>8)
		}
	}
}

func TestShowImageErrors(t *testing.T) {
	rec := &recorder{}
	if err := ShowImage(background(4, 4), WithSurface(rec), WithCmap("nope")); !errors.Is(err, cmap.ErrUnknown) {
		t.Errorf("unknown cmap error = %v", err)
	}
	if err := ShowImage(3.14, WithSurface(rec)); !errors.Is(err, source.ErrUnsupportedSource) {
		t.Errorf("bad source error = %v", err)
	}
	if len(rec.shown) != 0 {
		t.Errorf("figure shown despite errors")
	}
}

func TestSubplotImagesTooMany(t *testing.T) {
	rec := &recorder{}
	srcs := make([]any, 5)
	for i := range srcs {
		srcs[i] = background(4, 4)
	}

	err := SubplotImages(srcs, 2, 2, WithSurface(rec))
	if !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("error = %v, want ErrTooManyImages", err)
	}
	if len(rec.shown) != 0 {
		t.Errorf("figure shown despite error")
	}

	if err := SubplotImages(srcs[:1], 0, 2, WithSurface(rec)); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("error = %v, want ErrInvalidGrid", err)
	}
}

func TestSubplotImagesTitles(t *testing.T) {
	srcs := []any{background(4, 4), background(6, 3), background(3, 6)}

	tests := []struct {
		name    string
		opts    []Option
		want    []string
		wantErr error
	}{
		{"None", nil, []string{"", "", ""}, nil},
		{"Broadcast", []Option{WithTitle("same")}, []string{"same", "same", "same"}, nil},
		{"Single list", []Option{WithTitles("one")}, []string{"one", "one", "one"}, nil},
		{"Per image", []Option{WithTitles("a", "b", "c")}, []string{"a", "b", "c"}, nil},
		{"Mismatch", []Option{WithTitles("a", "b")}, nil, ErrTitleCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(Size{Width: 2, Height: 2}, tt.opts)
			fig, err := gridFigure(srcs, 2, 2, cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("gridFigure: %v", err)
			}

			var got []string
			for _, ax := range fig.Axes() {
				got = append(got, ax.Title())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("titles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubplotImagesRowMajor(t *testing.T) {
	srcs := []any{background(4, 4), background(4, 4), background(4, 4)}
	cfg := newConfig(Size{Width: 2, Height: 2}, []Option{WithAxis(true)})
	fig, err := gridFigure(srcs, 2, 2, cfg)
	if err != nil {
		t.Fatalf("gridFigure: %v", err)
	}

	want := [][2]int{{0, 0}, {0, 1}, {1, 0}}
	for i, ax := range fig.Axes() {
		row, col := ax.Cell()
		if row != want[i][0] || col != want[i][1] {
			t.Errorf("image %d in cell (%d,%d), want (%d,%d)", i, row, col, want[i][0], want[i][1])
		}
		if !ax.AxisVisible() {
			t.Errorf("image %d axes hidden", i)
		}
	}
}

func TestSubplotImagesShows(t *testing.T) {
	rec := &recorder{}
	srcs := []any{background(8, 8), image.NewGray(image.Rect(0, 0, 8, 8))}
	err := SubplotImages(srcs, 1, 2, WithSurface(rec), WithFigSize(2, 1), WithDPI(50), WithLayoutPad(2, 2), WithCmap("Greys_r"))
	if err != nil {
		t.Fatalf("SubplotImages: %v", err)
	}
	if len(rec.shown) != 1 {
		t.Fatalf("shown %d figures, want 1", len(rec.shown))
	}
}
