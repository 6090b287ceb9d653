/*
Package anim implements the compressed animation format played by fbspinner.

The file starts with a 16 byte header of four little-endian 32-bit integers;
the number of frames, the frame height, the frame width and the number of bytes
per pixel. This is followed by a single zlib stream holding every frame one
after the other, each stored row-major in the framebuffer layout so frames can
be copied straight onto the screen. The stream must hold exactly the number
of frames given in the header.
*/
package anim

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Mortal/fbspinner/pixel"
	"github.com/klauspost/compress/zlib"
)

// Filename is the default animation filename.
const Filename = "anim.bin"

var (
	errNotEnough     = errors.New("anim: not enough frame data")
	errTooMuch       = errors.New("anim: too much frame data")
	errShapeMismatch = errors.New("anim: frame shape differs from animation")
	errNoFrames      = errors.New("anim: no frames")
	errBadHeader     = errors.New("anim: invalid header")
)

// maxDimension matches the widest and tallest screen a packed geometry can
// describe.
const maxDimension = 1 << 15

type header struct {
	Frames uint32
	Height uint32
	Width  uint32
	Depth  uint32
}

// Animation is a sequence of equally shaped frames in the framebuffer layout.
type Animation struct {
	Width  int
	Height int
	Depth  int
	Frames [][]byte
}

// FrameSize returns the number of bytes in each frame.
func (a *Animation) FrameSize() int {
	return a.Width * a.Height * a.Depth
}

// Append adds a frame. The first frame decides the shape of the animation.
func (a *Animation) Append(b *pixel.Buffer) error {
	if b.Format.Order != pixel.BGR {
		return fmt.Errorf("anim: frame is %s, not in framebuffer order", b.Format)
	}

	if len(a.Frames) == 0 {
		a.Width, a.Height, a.Depth = b.Width, b.Height, b.Format.Channels
	} else if a.Width != b.Width || a.Height != b.Height || a.Depth != b.Format.Channels {
		return fmt.Errorf("%w: %dx%dx%d, expected %dx%dx%d", errShapeMismatch, b.Width, b.Height, b.Format.Channels, a.Width, a.Height, a.Depth)
	}

	a.Frames = append(a.Frames, b.Pix)

	return nil
}

// Frame returns frame i as a buffer.
func (a *Animation) Frame(i int) *pixel.Buffer {
	return &pixel.Buffer{
		Width:  a.Width,
		Height: a.Height,
		Format: pixel.DeviceFormat(a.Depth),
		Pix:    a.Frames[i],
	}
}

// Encode writes the animation to w.
func Encode(w io.Writer, a *Animation) error {
	if len(a.Frames) == 0 {
		return errNoFrames
	}

	h := header{
		Frames: uint32(len(a.Frames)),
		Height: uint32(a.Height),
		Width:  uint32(a.Width),
		Depth:  uint32(a.Depth),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}

	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return err
	}

	for _, f := range a.Frames {
		if len(f) != a.FrameSize() {
			return errShapeMismatch
		}
		if _, err := zw.Write(f); err != nil {
			return err
		}
	}

	return zw.Close()
}

// Decode reads an animation from r.
func Decode(r io.Reader) (*Animation, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errNotEnough
		}
		return nil, err
	}

	switch {
	case h.Frames == 0:
		return nil, errNoFrames
	case h.Width == 0 || h.Height == 0 || h.Width > maxDimension || h.Height > maxDimension:
		return nil, fmt.Errorf("%w: %dx%d frames", errBadHeader, h.Width, h.Height)
	case h.Depth != 3 && h.Depth != 4:
		return nil, fmt.Errorf("%w: depth %d", errBadHeader, h.Depth)
	}

	a := &Animation{
		Width:  int(h.Width),
		Height: int(h.Height),
		Depth:  int(h.Depth),
	}

	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	// Frame buffers only grow as data is decompressed
	size := int64(a.FrameSize())
	for i := uint32(0); i < h.Frames; i++ {
		f := new(bytes.Buffer)
		if _, err := io.CopyN(f, zr, size); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, errNotEnough
			}
			return nil, err
		}
		a.Frames = append(a.Frames, f.Bytes())
	}

	var tmp [1]byte
	if n, err := zr.Read(tmp[:]); n != 0 || err != io.EOF {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, errTooMuch
	}

	return a, nil
}

// MarshalBinary encodes the animation into binary form and returns the result.
func (a *Animation) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, a); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the animation from binary form.
func (a *Animation) UnmarshalBinary(b []byte) error {
	d, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*a = *d
	return nil
}
