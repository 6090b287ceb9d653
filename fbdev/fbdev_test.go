package fbdev

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/Mortal/fbspinner/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memory []byte

func (m memory) WriteAt(p []byte, off int64) (int, error) {
	return copy(m[off:], p), nil
}

func TestScreenInfoLayout(t *testing.T) {
	// sizeof(struct fb_var_screeninfo) is fixed by the kernel ABI
	assert.Equal(t, uintptr(160), unsafe.Sizeof(VarScreenInfo{}))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(VarScreenInfo{}.XRes))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(VarScreenInfo{}.BitsPerPixel))
}

func TestPacked(t *testing.T) {
	v := VarScreenInfo{XRes: 1024, YRes: 768, BitsPerPixel: 32}
	assert.Equal(t, geometry.Geometry{Width: 1024, Height: 768, BPP: 4}, geometry.Unpack(v.Packed()))

	v.BitsPerPixel = 24
	assert.Equal(t, geometry.Geometry{Width: 1024, Height: 768, BPP: 3}, geometry.Unpack(v.Packed()))
}

func TestQuerierNotFramebuffer(t *testing.T) {
	name := filepath.Join(t.TempDir(), "plain.raw")
	require.NoError(t, os.WriteFile(name, nil, 0o644))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	_, err = Querier{}.QueryGeometry(f.Fd())
	assert.Error(t, err)

	_, err = Open(name)
	assert.Error(t, err)
}

func TestWriter(t *testing.T) {
	v := &VarScreenInfo{XRes: 6, YRes: 7, BitsPerPixel: 32}
	f := &FixScreenInfo{LineLength: 6 * 4}
	screen := make(memory, 7*6*4)

	w, err := NewWriter(screen, v, f, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 16, w.FrameSize())

	frame := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
	}
	require.NoError(t, w.WriteFrame(frame))

	// x = (6-2)/2 = 2, y = (7-2)*4/5 = 4
	for y := 0; y < 7; y++ {
		row := screen[y*24 : (y+1)*24]
		switch y {
		case 4:
			assert.Equal(t, frame[0:8], []byte(row[8:16]))
		case 5:
			assert.Equal(t, frame[8:16], []byte(row[8:16]))
		default:
			assert.Equal(t, make([]byte, 24), []byte(row), "row %d", y)
		}
	}

	assert.Error(t, w.WriteFrame(frame[:8]))
}

func TestWriterOffsets(t *testing.T) {
	v := &VarScreenInfo{XRes: 4, YRes: 2, XOffset: 1, YOffset: 2, BitsPerPixel: 24}
	f := &FixScreenInfo{LineLength: 16}
	screen := make(memory, 16*4)

	w, err := NewWriter(screen, v, f, 4, 2)
	require.NoError(t, err)

	frame := make([]byte, 4*2*3)
	for i := range frame {
		frame[i] = byte(i + 1)
	}
	require.NoError(t, w.WriteFrame(frame))

	// Rows start at (0+2)*16 + (0+1)*3
	assert.Equal(t, frame[:12], []byte(screen[35:47]))
	assert.Equal(t, frame[12:], []byte(screen[51:63]))
}

func TestWriterTooBig(t *testing.T) {
	v := &VarScreenInfo{XRes: 4, YRes: 4, BitsPerPixel: 32}
	f := &FixScreenInfo{LineLength: 16}

	_, err := NewWriter(make(memory, 64), v, f, 5, 1)
	assert.Error(t, err)
}
