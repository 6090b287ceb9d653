/*
Package pixel converts packed pixel data between the layout used by image files
and the layout used by Linux framebuffers.

Image files store pixels as R, G, B with an optional trailing alpha channel.
Framebuffers store the same bytes in B, G, R order with an optional trailing
byte that is not used for anything. Converting between the two is done in two
independent passes; the number of channels is reconciled first and then the
channel order is swapped if the two layouts differ.
*/
package pixel

import "fmt"

// Order is the order of the color channels within a pixel.
type Order int

const (
	// RGB is the order used by decoded image files.
	RGB Order = iota
	// BGR is the order used by framebuffer devices.
	BGR
)

func (o Order) String() string {
	switch o {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

const (
	// Padding is the value written into the fourth channel when three
	// channels are widened to four. It is not an opaque alpha value.
	Padding byte = 0x00
)

// Format is a pixel layout.
type Format struct {
	Channels int
	Order    Order
}

func (f Format) String() string {
	switch f.Channels {
	case 3:
		return f.Order.String()
	case 4:
		return f.Order.String() + "A"
	}
	return fmt.Sprintf("%s/%d", f.Order, f.Channels)
}

// Standard layouts.
var (
	ImageRGB   = Format{Channels: 3, Order: RGB}
	ImageRGBA  = Format{Channels: 4, Order: RGB}
	DeviceBGR  = Format{Channels: 3, Order: BGR}
	DeviceBGRA = Format{Channels: 4, Order: BGR}
)

// DeviceFormat returns the framebuffer layout for the given bytes per pixel.
func DeviceFormat(bpp int) Format {
	return Format{Channels: bpp, Order: BGR}
}

// ImageFormat returns the image file layout for the given number of channels.
func ImageFormat(channels int) Format {
	return Format{Channels: channels, Order: RGB}
}

// DepthError is returned when there is no way to convert between two
// numbers of channels.
type DepthError struct {
	From, To int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("pixel: don't know how to convert depth %d to depth %d", e.From, e.To)
}
