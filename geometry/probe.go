package geometry

import (
	"fmt"
	"os"

	"github.com/pion/logging"
)

// File is the subset of *os.File the prober needs.
type File interface {
	Fd() uintptr
	Stat() (os.FileInfo, error)
}

// Querier asks a framebuffer device for its packed geometry.
type Querier interface {
	QueryGeometry(fd uintptr) (uint32, error)
}

// QuerierFunc adapts an ordinary function to the Querier interface.
type QuerierFunc func(fd uintptr) (uint32, error)

// QueryGeometry calls f(fd).
func (f QuerierFunc) QueryGeometry(fd uintptr) (uint32, error) {
	return f(fd)
}

// SizeMismatchError is returned when the number of bytes is not a whole
// multiple of the number of pixels.
type SizeMismatchError struct {
	Size   int64
	Width  int
	Height int
	BPP    int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("geometry: size %d not equal to %d*%d*%d", e.Size, e.Width, e.Height, e.BPP)
}

// ProbeError is returned when the device could not be queried, usually
// because the file is not a framebuffer.
type ProbeError struct {
	Err error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("geometry: unable to query framebuffer: %v", e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Prober works out the geometry of an open framebuffer.
type Prober struct {
	querier Querier
	logger  logging.LeveledLogger
}

// NewProber returns a Prober that falls back to q when the file size alone
// can't be used.
func NewProber(q Querier, logger logging.LeveledLogger) *Prober {
	return &Prober{
		querier: q,
		logger:  logger,
	}
}

// Probe returns the geometry of f. If size is non-nil and f has a non-zero
// size then the bytes per pixel is derived from that, otherwise the device
// is queried and size is ignored.
func (p *Prober) Probe(f File, size *Size) (Geometry, error) {
	info, err := f.Stat()
	if err != nil {
		return Geometry{}, err
	}

	if n := info.Size(); size != nil && n != 0 {
		pixels := int64(size.Width) * int64(size.Height)
		if pixels <= 0 {
			return Geometry{}, fmt.Errorf("%w: %s has no pixels", ErrInvalidSize, size)
		}
		bpp := n / pixels
		if n%pixels != 0 {
			return Geometry{}, &SizeMismatchError{
				Size:   n,
				Width:  size.Width,
				Height: size.Height,
				BPP:    int(bpp),
			}
		}
		return Geometry{Width: size.Width, Height: size.Height, BPP: int(bpp)}, nil
	}

	if size != nil {
		p.logger.Warnf("Ignoring geometry %s", size)
	}

	v, err := p.querier.QueryGeometry(f.Fd())
	if err != nil {
		return Geometry{}, &ProbeError{Err: err}
	}

	g := Unpack(v)
	p.logger.Debugf("Device reports %s", g)

	return g, nil
}
