package surface

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// File writes every figure to its own numbered file in Dir.
type File struct {
	Dir    string
	Format string

	mu   sync.Mutex
	n    int
	last string
}

// NewFile creates dir if needed. format is one of png, jpeg, gif, bmp or
// tiff.
func NewFile(dir, format string) (*File, error) {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	if err := encode(io.Discard, image.NewNRGBA(image.Rect(0, 0, 1, 1)), format); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid output path %q: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output folder %q: %w", dir, err)
	}

	return &File{Dir: dir, Format: format}, nil
}

func (f *File) Show(img image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.n++
	name := fmt.Sprintf("figure-%04d.%s", f.n, f.Format)
	if err := save(img, f.Format, f.Dir, name); err != nil {
		return err
	}

	f.last = filepath.Join(f.Dir, name)
	slog.Info("figure written", "file", f.last, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// Last returns the path of the most recent figure, or "" before the first.
func (f *File) Last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func save(img image.Image, format, destDir, destName string) (err error) {
	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			if rmErr := os.Remove(outFile.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
				slog.Error("could not remove temporary file", "name", outFile.Name(), "error", rmErr)
			}
		}
	}()

	if err = encode(outFile, img, format); err != nil {
		return fmt.Errorf("could not encode destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		return gif.Encode(w, img, nil)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestSpeed,
			BufferPool:       pngPool,
		}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
