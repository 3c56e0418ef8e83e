package palette

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

var palVersion = []byte{0x00, 0x03}

// ErrTooManyColors is returned for palettes that do not fit a PAL chunk.
var ErrTooManyColors = errors.New("too many colors for a PAL chunk")

// Load reads every palette stored in the RIFF PAL file at path and
// concatenates them into one list of marker colors.
func Load(path string) ([]color.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", path, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", path, err)
	}

	var res []color.RGBA
	for _, pal := range pals {
		res = append(res, FromPalette(pal)...)
	}
	return res, nil
}

// Save writes cols as a single palette RIFF PAL file at path.
func Save(path string, cols []color.RGBA) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", path, closeErr)
		}
	}()

	if _, err = WriteTo(f, ToPalette(cols)); err != nil {
		return fmt.Errorf("could not save palette file %q: %w", path, err)
	}
	return nil
}

// ReadFrom decodes a RIFF PAL stream. Nested PAL lists are flattened.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette

	for {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), err)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported list type: %s", ident, len(res), string(listType[:]))
			}

			nested, err := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, len(res), listType[:]))
			res = append(res, nested...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, len(res), string(id[:]))
		}
	}
}

func readPalette(r io.Reader, ident string) (color.Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if !bytes.Equal(hdr[:2], palVersion) {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, binary.BigEndian.Uint16(hdr[:2]))
	}

	count := binary.LittleEndian.Uint16(hdr[2:])
	res := make(color.Palette, count)
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return res[:i], fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		res[i] = color.RGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xFF}
	}

	return res, nil
}

// WriteTo encodes pals as a RIFF PAL stream, one data chunk per palette.
// It returns the number of colors written.
func WriteTo(w io.Writer, pals ...color.Palette) (int64, error) {
	size := len(palType)
	for i, pal := range pals {
		if len(pal) > math.MaxUint16 {
			return 0, fmt.Errorf("%w: palette %d has %d colors, at most %d fit", ErrTooManyColors, i, len(pal), math.MaxUint16)
		}
		size += 8 + chunkSize(pal)
	}

	var hdr []byte
	hdr = append(hdr, riffType[:]...)
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(size))
	hdr = append(hdr, palType[:]...)
	if err := writeBytes(w, hdr); err != nil {
		return 0, fmt.Errorf("could not write RIFF header: %w", err)
	}

	var count int64
	for i, pal := range pals {
		n, err := writePalette(w, pal)
		count += n
		if err != nil {
			return count, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return count, nil
}

func chunkSize(pal color.Palette) int {
	return len(palVersion) + 2 + len(pal)*4
}

func writePalette(w io.Writer, pal color.Palette) (int64, error) {
	var hdr []byte
	hdr = append(hdr, dataType[:]...)
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(chunkSize(pal)))
	hdr = append(hdr, palVersion...)
	hdr = binary.LittleEndian.AppendUint16(hdr, uint16(len(pal)))
	if err := writeBytes(w, hdr); err != nil {
		return 0, fmt.Errorf("could not write chunk header: %w", err)
	}

	for i, col := range pal {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		if err := writeBytes(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return int64(len(pal)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
