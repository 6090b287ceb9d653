package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Buffer is a row-major grid of packed pixels with no padding between rows.
type Buffer struct {
	Width  int
	Height int
	Format Format
	Pix    []byte
}

// NewBuffer wraps pix, which must be exactly width*height*channels bytes.
func NewBuffer(width, height int, f Format, pix []byte) (*Buffer, error) {
	if want := width * height * f.Channels; len(pix) != want {
		return nil, fmt.Errorf("pixel: buffer length (%d) not equal to %d*%d*%d", len(pix), width, height, f.Channels)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Format: f,
		Pix:    pix,
	}, nil
}

// Stride returns the number of bytes in one row.
func (b *Buffer) Stride() int {
	return b.Width * b.Format.Channels
}

// Convert converts the buffer to another layout. The receiver's pixels are
// handed over to the result and must not be used afterwards.
func (b *Buffer) Convert(f Format) (*Buffer, error) {
	pix, err := Convert(b.Pix, b.Format, f)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Format: f,
		Pix:    pix,
	}, nil
}

// Image returns the buffer as an image. Three channel buffers are returned as
// an opaque *image.RGBA and four channel buffers as an *image.NRGBA. The
// pixels are copied so the buffer is left untouched.
func (b *Buffer) Image() (image.Image, error) {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)

	c, err := (&Buffer{b.Width, b.Height, b.Format, pix}).Convert(ImageFormat(b.Format.Channels))
	if err != nil {
		return nil, err
	}

	r := image.Rect(0, 0, b.Width, b.Height)

	switch c.Format.Channels {
	case 3:
		m := image.NewRGBA(r)
		for i, j := 0, 0; i < len(c.Pix); i, j = i+3, j+4 {
			m.Pix[j+0] = c.Pix[i+0]
			m.Pix[j+1] = c.Pix[i+1]
			m.Pix[j+2] = c.Pix[i+2]
			m.Pix[j+3] = 0xff
		}
		return m, nil
	case 4:
		return &image.NRGBA{
			Pix:    c.Pix,
			Stride: c.Stride(),
			Rect:   r,
		}, nil
	}

	return nil, &DepthError{From: c.Format.Channels, To: 3}
}

// Channels returns the number of channels an image decodes to; four if the
// image carries an alpha channel, otherwise three.
func Channels(m image.Image) int {
	switch m := m.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return 4
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
	}
	return 3
}

// FromImage copies m into a new buffer in one of the image layouts. Gray
// images are expanded to three channels.
func FromImage(m image.Image) *Buffer {
	r := m.Bounds()
	channels := Channels(m)
	b := &Buffer{
		Width:  r.Dx(),
		Height: r.Dy(),
		Format: ImageFormat(channels),
		Pix:    make([]byte, r.Dx()*r.Dy()*channels),
	}

	switch m := m.(type) {
	case *image.NRGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			i := m.PixOffset(r.Min.X, y)
			copy(b.Pix[(y-r.Min.Y)*b.Stride():], m.Pix[i:i+b.Stride()])
		}
		return b
	case *image.RGBA:
		// Treated as opaque, the alpha channel is dropped
		i := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := m.Pix[m.PixOffset(r.Min.X, y):]
			for x := 0; x < r.Dx(); x++ {
				copy(b.Pix[i:i+3], row[x*4:x*4+3])
				i += 3
			}
		}
		return b
	}

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			b.Pix[i+0] = c.R
			b.Pix[i+1] = c.G
			b.Pix[i+2] = c.B
			if channels == 4 {
				b.Pix[i+3] = c.A
			}
			i += channels
		}
	}

	return b
}
