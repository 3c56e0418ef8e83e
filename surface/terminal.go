package surface

import (
	"fmt"
	"image"
	"io"

	"github.com/blacktop/go-termimg"
)

// Protocol is a terminal inline image protocol.
type Protocol int

const (
	None Protocol = iota
	ITerm2
	Kitty
)

func (p Protocol) String() string {
	switch p {
	case ITerm2:
		return "iterm2"
	case Kitty:
		return "kitty"
	}
	return "none"
}

func (p Protocol) termimg() (termimg.Protocol, bool) {
	switch p {
	case ITerm2:
		return termimg.ITerm2, true
	case Kitty:
		return termimg.Kitty, true
	}
	var none termimg.Protocol
	return none, false
}

func fromTermimg(p termimg.Protocol) Protocol {
	switch p {
	case termimg.ITerm2:
		return ITerm2
	case termimg.Kitty:
		return Kitty
	}
	return None
}

// DetectProtocol reports the inline image protocol of the current terminal.
// Protocols other than iTerm2 and Kitty count as None.
func DetectProtocol() Protocol {
	return fromTermimg(termimg.DetectProtocol())
}

// Terminal writes figures as inline images.
type Terminal struct {
	W        io.Writer
	Protocol Protocol
}

func NewTerminal(w io.Writer, p Protocol) *Terminal {
	return &Terminal{W: w, Protocol: p}
}

func (t *Terminal) Show(img image.Image) error {
	p, ok := t.Protocol.termimg()
	if !ok {
		return errNoTerminalProtocol
	}

	out, err := termimg.New(img).Protocol(p).Render()
	if err != nil {
		return fmt.Errorf("could not render %s image: %w", t.Protocol, err)
	}

	_, err = fmt.Fprintln(t.W, out)
	return err
}
