package cmap

import "image/color"

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func evenStops(cols ...color.NRGBA) []stop {
	res := make([]stop, len(cols))
	for i, c := range cols {
		res[i] = stop{pos: float64(i) / float64(len(cols)-1), col: c}
	}
	return res
}

var maps = map[string]Map{
	"gray":  newGradient("gray", false, evenStops(rgb(0, 0, 0), rgb(255, 255, 255))...),
	"Greys": newGradient("Greys", false, evenStops(rgb(255, 255, 255), rgb(0, 0, 0))...),
	"bone": newGradient("bone", false,
		stop{0, rgb(0, 0, 0)},
		stop{0.365, rgb(81, 81, 113)},
		stop{0.746, rgb(166, 198, 198)},
		stop{1, rgb(255, 255, 255)},
	),
	"hot": newGradient("hot", false,
		stop{0, rgb(10, 0, 0)},
		stop{0.365, rgb(255, 0, 0)},
		stop{0.746, rgb(255, 255, 0)},
		stop{1, rgb(255, 255, 255)},
	),
	"jet": newGradient("jet", false,
		stop{0, rgb(0, 0, 127)},
		stop{0.11, rgb(0, 0, 255)},
		stop{0.125, rgb(0, 0, 255)},
		stop{0.34, rgb(0, 219, 255)},
		stop{0.35, rgb(0, 229, 246)},
		stop{0.64, rgb(255, 255, 0)},
		stop{0.65, rgb(246, 244, 0)},
		stop{0.89, rgb(255, 30, 0)},
		stop{0.91, rgb(232, 0, 0)},
		stop{1, rgb(127, 0, 0)},
	),
	"viridis": newGradient("viridis", true, evenStops(
		rgb(68, 1, 84), rgb(71, 45, 123), rgb(59, 82, 139), rgb(44, 114, 142), rgb(33, 145, 140),
		rgb(40, 174, 128), rgb(94, 201, 98), rgb(173, 220, 48), rgb(253, 231, 37),
	)...),
	"plasma": newGradient("plasma", true, evenStops(
		rgb(13, 8, 135), rgb(84, 2, 163), rgb(126, 3, 168), rgb(166, 32, 152), rgb(204, 71, 120),
		rgb(230, 107, 93), rgb(248, 149, 64), rgb(253, 196, 39), rgb(240, 249, 33),
	)...),
	"inferno": newGradient("inferno", true, evenStops(
		rgb(0, 0, 4), rgb(40, 11, 84), rgb(101, 21, 110), rgb(159, 42, 99), rgb(212, 72, 66),
		rgb(245, 125, 21), rgb(250, 193, 39), rgb(252, 255, 164),
	)...),
	"magma": newGradient("magma", true, evenStops(
		rgb(0, 0, 4), rgb(28, 16, 68), rgb(79, 18, 123), rgb(129, 37, 129), rgb(181, 54, 122),
		rgb(229, 80, 100), rgb(251, 135, 97), rgb(254, 194, 135), rgb(252, 253, 191),
	)...),
}
