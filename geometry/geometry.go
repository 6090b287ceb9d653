/*
Package geometry works out the width, height and bytes per pixel of a raw
framebuffer.

The geometry is either derived from an explicit width and height combined with
the number of bytes in the file, or queried from the framebuffer device itself.
The device query is reduced to a single packed 32-bit value:

	bits 17-31  yres
	bits  2-16  xres
	bits  0-1   bits_per_pixel / 8 % 4

so a 32 bits per pixel device reports a depth class of 0 which is read back as
4 bytes per pixel.
*/
package geometry

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	yresShift  = 17
	xresShift  = 2
	xresBits   = yresShift - xresShift
	xresMask   = 1<<xresBits - 1
	depthMask  = 1<<xresShift - 1
	depthWidth = 4
)

// ErrInvalidSize is returned by ParseSize for anything other than WxH.
var ErrInvalidSize = errors.New("geometry: invalid size")

var sizeRE = regexp.MustCompile(`^(\d+)x(\d+)$`)

// Size is an explicit width and height in pixels.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses a string of the form "640x480".
func ParseSize(s string) (Size, error) {
	m := sizeRE.FindStringSubmatch(s)
	if m == nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	width, err := strconv.Atoi(m[1])
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	height, err := strconv.Atoi(m[2])
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	if width == 0 || height == 0 {
		return Size{}, fmt.Errorf("%w: %q has no pixels", ErrInvalidSize, s)
	}

	return Size{Width: width, Height: height}, nil
}

// Geometry describes a framebuffer.
type Geometry struct {
	Width  int
	Height int
	BPP    int // bytes per pixel
}

// Size returns the number of bytes one full frame occupies.
func (g Geometry) Size() int {
	return g.Width * g.Height * g.BPP
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Width, g.Height, g.BPP)
}

// Pack encodes a device resolution and depth into the packed query value.
func Pack(xres, yres, bitsPerPixel uint32) uint32 {
	return yres<<yresShift + xres<<xresShift + bitsPerPixel/8%depthWidth
}

// Unpack decodes a packed query value.
func Unpack(v uint32) Geometry {
	bpp := int(v & depthMask)
	if bpp == 0 {
		bpp = depthWidth
	}
	pixels := v >> xresShift
	return Geometry{
		Width:  int(pixels & xresMask),
		Height: int(pixels >> xresBits),
		BPP:    bpp,
	}
}
