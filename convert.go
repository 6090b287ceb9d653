package fbspinner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Mortal/fbspinner/geometry"
	"github.com/Mortal/fbspinner/pixel"
)

// Direction is which way a conversion goes.
type Direction int

const (
	// DeviceToImage reads a framebuffer and writes an image file.
	DeviceToImage Direction = iota + 1
	// ImageToDevice reads an image file and writes a framebuffer.
	ImageToDevice
)

func (d Direction) String() string {
	switch d {
	case DeviceToImage:
		return "fb to image"
	case ImageToDevice:
		return "image to fb"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// IsFramebuffer reports whether path names a framebuffer device or a raw
// framebuffer dump.
func IsFramebuffer(path string) bool {
	return strings.HasPrefix(path, "/dev/fb") || strings.HasSuffix(path, ".fb") || strings.HasSuffix(path, ".raw")
}

// DetectDirection works out which way to convert. Exactly one of input and
// output must be a framebuffer.
func DetectDirection(input, output string) (Direction, error) {
	switch in, out := IsFramebuffer(input), IsFramebuffer(output); {
	case in && !out:
		return DeviceToImage, nil
	case !in && out:
		return ImageToDevice, nil
	}
	return 0, errDirection
}

// Convert converts input to output in whichever direction is appropriate.
// If size is non-nil it is used instead of querying the framebuffer when the
// framebuffer has a known size.
func (s *Spinner) Convert(input, output string, size *geometry.Size) error {
	d, err := DetectDirection(input, output)
	if err != nil {
		return err
	}

	s.logger.Debugf("Converting %s from %q to %q", d, input, output)

	switch d {
	case DeviceToImage:
		return s.DeviceToImage(input, output, size)
	default:
		return s.ImageToDevice(input, output, size)
	}
}

// readRaw reads exactly one frame of g from r.
func readRaw(r io.Reader, g geometry.Geometry) ([]byte, error) {
	b := make([]byte, g.Size())
	if n, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, &TruncatedInputError{Want: len(b), Got: n}
		}
		return nil, err
	}
	return b, nil
}

// DeviceToImage reads the framebuffer input and writes it as the image
// output. The image format is chosen from the output file extension and is
// always three channel RGB.
func (s *Spinner) DeviceToImage(input, output string, size *geometry.Size) error {
	encode, err := encoderFor(output)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := s.prober.Probe(f, size)
	if err != nil {
		return err
	}

	raw, err := readRaw(f, g)
	if err != nil {
		return err
	}

	b, err := pixel.NewBuffer(g.Width, g.Height, pixel.DeviceFormat(g.BPP), raw)
	if err != nil {
		return err
	}

	if b, err = b.Convert(pixel.ImageRGB); err != nil {
		return err
	}

	s.logger.Infof("Read %s framebuffer", g)

	m, err := b.Image()
	if err != nil {
		return err
	}

	return encodeFile(output, encode, m)
}

// ImageToDevice writes the image input to the framebuffer output, which must
// already exist. The image must be the same size as the framebuffer.
func (s *Spinner) ImageToDevice(input, output string, size *geometry.Size) error {
	m, err := decodeFile(input)
	if err != nil {
		return err
	}

	b := pixel.FromImage(m)

	f, err := os.OpenFile(output, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := s.prober.Probe(f, size)
	if err != nil {
		return err
	}

	if b.Width != g.Width || b.Height != g.Height {
		return &DimensionMismatchError{
			ImageWidth:  b.Width,
			ImageHeight: b.Height,
			Width:       g.Width,
			Height:      g.Height,
		}
	}

	s.logger.Infof("Writing %s image to %s framebuffer", b.Format, g)

	if b, err = b.Convert(pixel.DeviceFormat(g.BPP)); err != nil {
		return err
	}

	if len(b.Pix) != g.Size() {
		panic(fmt.Sprintf("fbspinner: converted %d bytes for a %s framebuffer", len(b.Pix), g))
	}

	_, err = f.Write(b.Pix)
	if err != nil {
		return err
	}

	return f.Close()
}
