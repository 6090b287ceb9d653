package fbspinner

import (
	"errors"
	"fmt"
)

// ErrInvalidArguments is wrapped by every error caused by how the tool was
// invoked rather than by the files themselves.
var ErrInvalidArguments = errors.New("invalid arguments")

var errDirection = fmt.Errorf("%w: exactly one argument must be a framebuffer (/dev/fb* or *.fb or *.raw)", ErrInvalidArguments)

// DimensionMismatchError is returned when an image is a different size to
// the framebuffer it is being written to.
type DimensionMismatchError struct {
	ImageWidth, ImageHeight int
	Width, Height           int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("image size %dx%d does not match fb size %dx%d", e.ImageWidth, e.ImageHeight, e.Width, e.Height)
}

// TruncatedInputError is returned when a framebuffer holds fewer bytes than
// its geometry requires.
type TruncatedInputError struct {
	Want, Got int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("framebuffer truncated, read %d of %d bytes", e.Got, e.Want)
}
