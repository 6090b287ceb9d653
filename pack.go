package fbspinner

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/Mortal/fbspinner/anim"
)

// DefaultFrames is the default glob used to find animation frames.
const DefaultFrames = "anim/frame*.png"

// PackOptions controls how frames are packed into an animation.
type PackOptions struct {
	// Region, if not empty, is cropped from every frame before the frames
	// are trimmed to their bounding box.
	Region image.Rectangle
	// Colors, if non-zero, is the maximum number of colors in each frame.
	Colors int
	// Workers is the number of frames decoded at once.
	Workers int
}

// Pack packs every image matching pattern, sorted by name, into an animation
// written to output.
func (s *Spinner) Pack(ctx context.Context, pattern, output string, opts PackOptions) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no frames match %q", pattern)
	}
	sort.Strings(files)

	frames, err := s.loadFrames(ctx, files, opts.Workers)
	if err != nil {
		return err
	}

	if frames, err = anim.Trim(frames, opts.Region); err != nil {
		return err
	}
	s.logger.Debugf("Trimmed %d frames to %v", len(frames), frames[0].Bounds())

	if opts.Colors > 0 {
		frames = anim.Quantize(frames, opts.Colors)
	}

	a := new(anim.Animation)
	for _, m := range frames {
		b, err := anim.Flatten(m)
		if err != nil {
			return err
		}
		if err := a.Append(b); err != nil {
			return err
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := anim.Encode(f, a); err != nil {
		return err
	}

	s.logger.Infof("Packed %d %dx%d frames into %q", len(a.Frames), a.Width, a.Height, output)

	return f.Close()
}
