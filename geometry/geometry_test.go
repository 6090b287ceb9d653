package geometry

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProber(q Querier) *Prober {
	return NewProber(q, logging.NewDefaultLoggerFactory().NewLogger("geometry"))
}

func tempFile(t *testing.T, n int) *os.File {
	t.Helper()

	name := filepath.Join(t.TempDir(), "fb.raw")
	require.NoError(t, os.WriteFile(name, make([]byte, n), 0o644))

	f, err := os.Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

var noQuery = QuerierFunc(func(uintptr) (uint32, error) {
	return 0, errors.New("device should not be queried")
})

func TestParseSize(t *testing.T) {
	tables := map[string]struct {
		in   string
		want Size
		err  bool
	}{
		"vga":        {in: "640x480", want: Size{640, 480}},
		"square":     {in: "1x1", want: Size{1, 1}},
		"uppercase":  {in: "640X480", err: true},
		"spaces":     {in: " 640x480", err: true},
		"trailing":   {in: "640x480x32", err: true},
		"negative":   {in: "-640x480", err: true},
		"empty":      {in: "", err: true},
		"zero width": {in: "0x480", err: true},
		"overflow":   {in: "99999999999999999999x1", err: true},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			got, err := ParseSize(table.in)
			if table.err {
				assert.ErrorIs(t, err, ErrInvalidSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, table.want, got)
		})
	}
}

func TestUnpack(t *testing.T) {
	for _, y := range []uint32{0, 1, 480, 1080, 2160, 1<<14 - 1} {
		for _, x := range []uint32{0, 1, 640, 1920, 3840, 1<<15 - 1} {
			for c := uint32(0); c < 4; c++ {
				g := Unpack(y<<17 + x<<2 + c)
				assert.Equal(t, int(x), g.Width)
				assert.Equal(t, int(y), g.Height)
				if c == 0 {
					assert.Equal(t, 4, g.BPP)
				} else {
					assert.Equal(t, int(c), g.BPP)
				}
			}
		}
	}
}

func TestPack(t *testing.T) {
	assert.Equal(t, Geometry{Width: 1920, Height: 1080, BPP: 4}, Unpack(Pack(1920, 1080, 32)))
	assert.Equal(t, Geometry{Width: 640, Height: 480, BPP: 3}, Unpack(Pack(640, 480, 24)))
	assert.Equal(t, Geometry{Width: 320, Height: 240, BPP: 2}, Unpack(Pack(320, 240, 16)))
}

func TestProbeExplicit(t *testing.T) {
	for _, bpp := range []int{3, 4} {
		for _, size := range []Size{{1, 1}, {10, 10}, {7, 3}, {64, 40}} {
			f := tempFile(t, size.Width*size.Height*bpp)

			g, err := newTestProber(noQuery).Probe(f, &size)
			require.NoError(t, err)
			assert.Equal(t, Geometry{Width: size.Width, Height: size.Height, BPP: bpp}, g)
			assert.Equal(t, size.Width*size.Height*bpp, g.Size())
		}
	}
}

func TestProbeNoPixels(t *testing.T) {
	f := tempFile(t, 12)

	for _, size := range []Size{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := newTestProber(noQuery).Probe(f, &size)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestProbeSizeMismatch(t *testing.T) {
	f := tempFile(t, 301)

	_, err := newTestProber(noQuery).Probe(f, &Size{10, 10})

	var mismatch *SizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, &SizeMismatchError{Size: 301, Width: 10, Height: 10, BPP: 3}, mismatch)
	assert.Equal(t, "geometry: size 301 not equal to 10*10*3", err.Error())
}

func TestProbeDevice(t *testing.T) {
	var queried uintptr
	q := QuerierFunc(func(fd uintptr) (uint32, error) {
		queried = fd
		return Pack(640, 480, 32), nil
	})

	tables := map[string]*Size{
		"no geometry":      nil,
		"ignored geometry": {100, 50},
	}

	for name, size := range tables {
		t.Run(name, func(t *testing.T) {
			f := tempFile(t, 0)

			g, err := newTestProber(q).Probe(f, size)
			require.NoError(t, err)
			assert.Equal(t, Geometry{Width: 640, Height: 480, BPP: 4}, g)
			assert.Equal(t, f.Fd(), queried)
		})
	}
}

func TestProbeDeviceWithoutGeometry(t *testing.T) {
	f := tempFile(t, 1234)
	q := QuerierFunc(func(uintptr) (uint32, error) {
		return Pack(800, 600, 24), nil
	})

	g, err := newTestProber(q).Probe(f, nil)
	require.NoError(t, err)
	assert.Equal(t, Geometry{Width: 800, Height: 600, BPP: 3}, g)
}

func TestProbeUnavailable(t *testing.T) {
	f := tempFile(t, 0)
	q := QuerierFunc(func(uintptr) (uint32, error) {
		return 0, syscall.ENOTTY
	})

	_, err := newTestProber(q).Probe(f, nil)

	var probe *ProbeError
	require.ErrorAs(t, err, &probe)
	assert.ErrorIs(t, err, syscall.ENOTTY)
}
