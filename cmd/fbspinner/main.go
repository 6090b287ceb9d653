package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"syscall"

	"github.com/Mortal/fbspinner"
	"github.com/Mortal/fbspinner/anim"
	"github.com/Mortal/fbspinner/fbdev"
	"github.com/Mortal/fbspinner/geometry"
	"github.com/pion/logging"
	"github.com/urfave/cli/v2"
)

const (
	defaultDevice  = "/dev/fb0"
	defaultWorkers = 10
)

var cropRE = regexp.MustCompile(`^(\d+),(\d+),(\d+x\d+)$`)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context, scope string) logging.LeveledLogger {
	factory := logging.NewDefaultLoggerFactory()
	factory.Writer = os.Stderr
	factory.DefaultLogLevel = logging.LogLevelWarn
	if c.Bool("verbose") {
		factory.DefaultLogLevel = logging.LogLevelDebug
	}
	return factory.NewLogger(scope)
}

func exitError(err error) error {
	if errors.Is(err, fbspinner.ErrInvalidArguments) {
		return cli.NewExitError(err, 2)
	}
	return cli.NewExitError(err, 1)
}

func parseGeometry(c *cli.Context) (*geometry.Size, error) {
	if !c.IsSet("geometry") {
		return nil, nil
	}
	size, err := geometry.ParseSize(c.String("geometry"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fbspinner.ErrInvalidArguments, err)
	}
	return &size, nil
}

func parseCrop(s string) (image.Rectangle, error) {
	if s == "" {
		return image.Rectangle{}, nil
	}
	m := cropRE.FindStringSubmatch(s)
	if m == nil {
		return image.Rectangle{}, fmt.Errorf("%w: crop %q is not X,Y,WxH", fbspinner.ErrInvalidArguments, s)
	}
	x, err := strconv.Atoi(m[1])
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("%w: %v", fbspinner.ErrInvalidArguments, err)
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("%w: %v", fbspinner.ErrInvalidArguments, err)
	}
	size, err := geometry.ParseSize(m[3])
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("%w: %v", fbspinner.ErrInvalidArguments, err)
	}
	return image.Rect(x, y, x+size.Width, y+size.Height), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "fbspinner"
	app.Usage = "Convert between Linux framebuffers and image files"
	app.Version = "1.0.0"
	app.ArgsUsage = "INPUT OUTPUT"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "geometry",
			EnvVars: []string{"FBSPINNER_GEOMETRY"},
			Usage:   "framebuffer size as WxH, used instead of querying the device",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() != 2 {
			cli.ShowAppHelpAndExit(c, 2)
		}

		size, err := parseGeometry(c)
		if err != nil {
			return exitError(err)
		}

		s := fbspinner.New(fbdev.Querier{}, newLogger(c, "fbspinner"))

		if err := s.Convert(c.Args().Get(0), c.Args().Get(1), size); err != nil {
			return exitError(err)
		}

		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "pack",
			Usage:       "Pack animation frames into a single file",
			Description: "Frames are trimmed to the box containing every non-black pixel and stored as " + anim.Filename + " ready to play.",
			ArgsUsage:   "[GLOB]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   anim.Filename,
					Usage:   "path to write the animation to",
				},
				&cli.StringFlag{
					Name:  "crop",
					Usage: "crop every frame to X,Y,WxH before trimming",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "maximum number of colors per frame, 0 to keep every color",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: defaultWorkers,
					Usage: "number of frames to decode at once",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() > 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 2)
				}

				pattern := fbspinner.DefaultFrames
				if c.NArg() == 1 {
					pattern = c.Args().First()
				}

				region, err := parseCrop(c.String("crop"))
				if err != nil {
					return exitError(err)
				}

				s := fbspinner.New(fbdev.Querier{}, newLogger(c, "pack"))

				opts := fbspinner.PackOptions{
					Region:  region,
					Colors:  c.Int("colors"),
					Workers: c.Int("workers"),
				}

				if err := s.Pack(context.Background(), pattern, c.String("output"), opts); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "play",
			Usage:       "Play an animation on a framebuffer",
			Description: "The animation is centred horizontally and placed four fifths of the way down the screen.",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "device",
					EnvVars: []string{"FBSPINNER_DEVICE"},
					Value:   defaultDevice,
					Usage:   "framebuffer device to play on",
				},
				&cli.IntFlag{
					Name:  "fps",
					Value: fbspinner.DefaultFPS,
					Usage: "frames per second",
				},
				&cli.IntFlag{
					Name:  "loops",
					Usage: "number of times to play the animation, 0 to play until interrupted",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() > 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 2)
				}

				file := anim.Filename
				if c.NArg() == 1 {
					file = c.Args().First()
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				s := fbspinner.New(fbdev.Querier{}, newLogger(c, "play"))

				opts := fbspinner.PlayOptions{
					FPS:   c.Int("fps"),
					Loops: c.Int("loops"),
				}

				if err := s.Play(ctx, c.String("device"), file, opts); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
