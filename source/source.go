// Package source turns image paths and decoded images into a uniform list
// of decoded images.
package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedSource = errors.New("unsupported image source")

// Open decodes the image file at path, applying its EXIF orientation. Files
// always come back as color images, grayscale ones included, so color maps
// never apply to them.
func Open(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not read image %q: %w", path, err)
	}
	return imaging.Clone(img), nil
}

// Read resolves every source to a decoded image, keeping their order.
// A source is either a path string or an image.Image, which is passed
// through as is.
func Read(srcs ...any) ([]image.Image, error) {
	images := make([]image.Image, 0, len(srcs))
	for i, src := range srcs {
		switch s := src.(type) {
		case string:
			img, err := Open(s)
			if err != nil {
				return nil, err
			}
			images = append(images, img)
		case image.Image:
			images = append(images, s)
		default:
			return nil, fmt.Errorf("%w at %d: %T", ErrUnsupportedSource, i, src)
		}
	}
	return images, nil
}
