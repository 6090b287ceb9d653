package anim

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/Mortal/fbspinner/pixel"
	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
)

var errBlank = errors.New("anim: every frame is blank")

// Flatten converts a decoded image into a frame in the framebuffer layout;
// B, G, R and a zero byte. Any alpha channel is discarded first.
func Flatten(m image.Image) (*pixel.Buffer, error) {
	b, err := pixel.FromImage(m).Convert(pixel.ImageRGB)
	if err != nil {
		return nil, err
	}
	return b.Convert(pixel.DeviceBGRA)
}

// blank reports whether c is black. Alpha is ignored as Flatten drops it.
func blank(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r|g|b == 0
}

// BoundingBox returns the smallest rectangle that contains every pixel that
// isn't black in any of the frames. The result is relative to each frame's
// bounds.
func BoundingBox(frames []image.Image) image.Rectangle {
	var box image.Rectangle
	for _, m := range frames {
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if !blank(m.At(x, y)) {
					p := image.Pt(x, y).Sub(b.Min)
					box = box.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
				}
			}
		}
	}
	return box
}

// Crop crops every frame to r, which is relative to each frame's bounds. The
// cropped frames have their origin at (0, 0).
func Crop(frames []image.Image, r image.Rectangle) []image.Image {
	out := make([]image.Image, len(frames))
	for i, m := range frames {
		g := gift.New(gift.Crop(r.Add(m.Bounds().Min)))
		dst := image.NewRGBA(g.Bounds(m.Bounds()))
		g.Draw(dst, m)
		out[i] = dst
	}
	return out
}

// Trim crops every frame to region, if it isn't empty, and then to the
// bounding box of whatever is left.
func Trim(frames []image.Image, region image.Rectangle) ([]image.Image, error) {
	if !region.Empty() {
		frames = Crop(frames, region)
	}

	box := BoundingBox(frames)
	if box.Empty() {
		return nil, errBlank
	}

	return Crop(frames, box), nil
}

// Quantize reduces each frame to at most n colors.
func Quantize(frames []image.Image, n int) []image.Image {
	q := quantize.MedianCutQuantizer{}
	out := make([]image.Image, len(frames))
	for i, m := range frames {
		b := m.Bounds()
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
		out[i] = pm
	}
	return out
}
