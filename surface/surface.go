// Package surface is where rendered figures end up: image files, inline
// terminal images, or nowhere.
package surface

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrUnknownBackend     = errors.New("unknown display backend")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	errNoTerminalProtocol = errors.New("terminal does not support inline images")
)

// Environment variables consulted by FromEnv.
const (
	EnvBackend = "PICSHOW_BACKEND"
	EnvDir     = "PICSHOW_DIR"
	EnvFormat  = "PICSHOW_FORMAT"
)

// Surface displays a rendered figure.
type Surface interface {
	Show(img image.Image) error
}

type discard struct{}

func (discard) Show(image.Image) error {
	return nil
}

// Discard drops every figure.
var Discard Surface = discard{}

// Default returns the process wide surface, selected from the environment
// the first time it is needed.
var Default = sync.OnceValues(FromEnv)

// FromEnv selects a surface from PICSHOW_BACKEND: auto (the default), file,
// iterm2, kitty or none.
func FromEnv() (Surface, error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv(EnvBackend)))
	if backend == "" {
		backend = "auto"
	}

	switch backend {
	case "auto":
		if p := DetectProtocol(); p != None {
			slog.Debug("displaying inline", "protocol", p)
			return NewTerminal(os.Stdout, p), nil
		}
		return fileFromEnv()
	case "file":
		return fileFromEnv()
	case "iterm2", "iterm":
		return NewTerminal(os.Stdout, ITerm2), nil
	case "kitty":
		return NewTerminal(os.Stdout, Kitty), nil
	case "none":
		return Discard, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func fileFromEnv() (Surface, error) {
	dir := os.Getenv(EnvDir)
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "picshow")
	}
	format := os.Getenv(EnvFormat)
	if format == "" {
		format = "png"
	}

	return NewFile(dir, format)
}
