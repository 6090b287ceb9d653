package fbspinner

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type encodeFunc func(io.Writer, image.Image) error

var encoders = map[string]encodeFunc{
	".bmp":  bmp.Encode,
	".gif":  gifEncode,
	".jpeg": jpegEncode,
	".jpg":  jpegEncode,
	".png":  png.Encode,
	".tif":  tiffEncode,
	".tiff": tiffEncode,
}

func gifEncode(w io.Writer, m image.Image) error {
	return gif.Encode(w, m, nil)
}

func jpegEncode(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: 100})
}

func tiffEncode(w io.Writer, m image.Image) error {
	return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
}

func encoderFor(file string) (encodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(file))
	if e, ok := encoders[ext]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: don't know how to write %q images", ErrInvalidArguments, ext)
}

func decodeFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return m, nil
}

func encodeFile(file string, e encodeFunc, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := e(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
