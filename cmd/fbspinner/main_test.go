package main

import (
	"image"
	"testing"

	"github.com/Mortal/fbspinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCrop(t *testing.T) {
	r, err := parseCrop("")
	require.NoError(t, err)
	assert.True(t, r.Empty())

	r, err = parseCrop("10,20,30x40")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(10, 20, 40, 60), r)

	for _, s := range []string{"10,20", "10,20,30", "-1,0,1x1", "0,0,0x1", "a,b,cxd"} {
		_, err := parseCrop(s)
		assert.ErrorIs(t, err, fbspinner.ErrInvalidArguments, s)
	}
}

func TestExitError(t *testing.T) {
	assert.Equal(t, 2, exitError(fbspinner.ErrInvalidArguments).(interface{ ExitCode() int }).ExitCode())
	assert.Equal(t, 1, exitError(&fbspinner.TruncatedInputError{Want: 4}).(interface{ ExitCode() int }).ExitCode())
}
