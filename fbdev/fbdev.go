/*
Package fbdev talks to Linux framebuffer devices.

It reads the variable and fixed screen information with the FBIOGET_VSCREENINFO
and FBIOGET_FSCREENINFO ioctls and writes frames into the visible area of the
screen.
*/
package fbdev

import (
	"errors"
	"os"

	"github.com/Mortal/fbspinner/geometry"
)

const (
	ioctlGetVarScreenInfo = 0x4600
	ioctlGetFixScreenInfo = 0x4602
)

var errUnsupported = errors.New("fbdev: framebuffer devices are not supported on this platform")

// BitField describes where one color channel sits within a pixel.
type BitField struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// VarScreenInfo mirrors struct fb_var_screeninfo from linux/fb.h.
type VarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          BitField
	Green        BitField
	Blue         BitField
	Transp       BitField
	NonStd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	PixClock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HSyncLen     uint32
	VSyncLen     uint32
	Sync         uint32
	VMode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// FixScreenInfo mirrors struct fb_fix_screeninfo from linux/fb.h.
type FixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Packed returns the screen geometry in the packed form understood by
// geometry.Unpack.
func (v *VarScreenInfo) Packed() uint32 {
	return geometry.Pack(v.XRes, v.YRes, v.BitsPerPixel)
}

// BytesPerPixel returns the number of whole bytes used by each pixel.
func (v *VarScreenInfo) BytesPerPixel() int {
	return int(v.BitsPerPixel / 8)
}

// Querier implements geometry.Querier using the FBIOGET_VSCREENINFO ioctl.
type Querier struct{}

// QueryGeometry returns the packed geometry of the framebuffer open on fd.
func (Querier) QueryGeometry(fd uintptr) (uint32, error) {
	var v VarScreenInfo
	if err := getVarScreenInfo(fd, &v); err != nil {
		return 0, err
	}
	return v.Packed(), nil
}

// Device is an open framebuffer device.
type Device struct {
	f   *os.File
	Var VarScreenInfo
	Fix FixScreenInfo
}

// Open opens the framebuffer device at path for reading and writing and
// reads its screen information.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	d := &Device{f: f}

	if err := getFixScreenInfo(f.Fd(), &d.Fix); err != nil {
		f.Close()
		return nil, &os.SyscallError{Syscall: "FBIOGET_FSCREENINFO", Err: err}
	}

	if err := getVarScreenInfo(f.Fd(), &d.Var); err != nil {
		f.Close()
		return nil, &os.SyscallError{Syscall: "FBIOGET_VSCREENINFO", Err: err}
	}

	return d, nil
}

// Close closes the device.
func (d *Device) Close() error {
	return d.f.Close()
}

// Writer returns a Writer that places width by height frames on the screen.
func (d *Device) Writer(width, height int) (*Writer, error) {
	return NewWriter(d.f, &d.Var, &d.Fix, width, height)
}
