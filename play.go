package fbspinner

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/Mortal/fbspinner/anim"
	"github.com/Mortal/fbspinner/fbdev"
	"github.com/Mortal/fbspinner/pixel"
)

// DefaultFPS is the default playback rate.
const DefaultFPS = 30

type frameWriter interface {
	WriteFrame([]byte) error
}

// PlayOptions controls playback.
type PlayOptions struct {
	FPS int
	// Loops is the number of times to play the animation, zero loops
	// forever.
	Loops int
}

// Play plays the animation in file on the framebuffer device until ctx is
// cancelled or the requested number of loops have played.
func (s *Spinner) Play(ctx context.Context, device, file string, opts PlayOptions) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	a, err := anim.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	d, err := fbdev.Open(device)
	if err != nil {
		return err
	}
	defer d.Close()

	w, err := d.Writer(a.Width, a.Height)
	if err != nil {
		return err
	}

	frames, err := matchDepth(a, d.Var.BytesPerPixel())
	if err != nil {
		return err
	}

	s.logger.Infof("Playing %d %dx%d frames on %s", len(frames), a.Width, a.Height, device)
	defer s.logger.Info("Playback stopped")

	return s.play(ctx, w, frames, opts)
}

// matchDepth converts every frame to the depth of the screen.
func matchDepth(a *anim.Animation, bpp int) ([][]byte, error) {
	frames := make([][]byte, len(a.Frames))
	for i := range a.Frames {
		b, err := a.Frame(i).Convert(pixel.DeviceFormat(bpp))
		if err != nil {
			return nil, err
		}
		frames[i] = b.Pix
	}
	return frames, nil
}

func (s *Spinner) play(ctx context.Context, w frameWriter, frames [][]byte, opts PlayOptions) error {
	if len(frames) == 0 {
		return errors.New("no frames to play")
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for loop := 0; opts.Loops == 0 || loop < opts.Loops; loop++ {
		for _, frame := range frames {
			if err := w.WriteFrame(frame); err != nil {
				return err
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return nil
			}
		}
	}

	return nil
}
