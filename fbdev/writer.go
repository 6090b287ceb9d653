package fbdev

import (
	"fmt"
	"io"
)

// Writer writes fixed size frames at a fixed position on the screen, one row
// at a time.
type Writer struct {
	w        io.WriterAt
	offset   int64
	stride   int64
	rowBytes int
	height   int
}

// NewWriter returns a Writer for width by height frames. The frame is
// centered horizontally and placed four fifths of the way down the screen.
func NewWriter(w io.WriterAt, v *VarScreenInfo, f *FixScreenInfo, width, height int) (*Writer, error) {
	if width > int(v.XRes) || height > int(v.YRes) {
		return nil, fmt.Errorf("fbdev: %dx%d frame does not fit on %dx%d screen", width, height, v.XRes, v.YRes)
	}

	bpp := v.BytesPerPixel()
	x := (int(v.XRes) - width) / 2
	y := (int(v.YRes) - height) * 4 / 5

	return &Writer{
		w:        w,
		offset:   int64(y+int(v.YOffset))*int64(f.LineLength) + int64((x+int(v.XOffset))*bpp),
		stride:   int64(f.LineLength),
		rowBytes: width * bpp,
		height:   height,
	}, nil
}

// FrameSize returns the number of bytes expected by WriteFrame.
func (w *Writer) FrameSize() int {
	return w.rowBytes * w.height
}

// WriteFrame writes one frame.
func (w *Writer) WriteFrame(frame []byte) error {
	if len(frame) != w.FrameSize() {
		return fmt.Errorf("fbdev: frame length (%d) not equal to expected (%d)", len(frame), w.FrameSize())
	}

	offset := w.offset
	for i := 0; i < len(frame); i += w.rowBytes {
		if _, err := w.w.WriteAt(frame[i:i+w.rowBytes], offset); err != nil {
			return err
		}
		offset += w.stride
	}

	return nil
}
