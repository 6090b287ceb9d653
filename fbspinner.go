/*
Package fbspinner is a library for moving pixels between Linux framebuffers and
image files, and for building and playing the small boot animations shown on
a framebuffer.
*/
package fbspinner

import (
	"github.com/Mortal/fbspinner/geometry"
	"github.com/pion/logging"
)

// Spinner holds what's needed for one conversion, pack or playback.
type Spinner struct {
	prober *geometry.Prober
	logger logging.LeveledLogger
}

// New returns a Spinner that uses q to query framebuffer devices.
func New(q geometry.Querier, logger logging.LeveledLogger) *Spinner {
	return &Spinner{
		prober: geometry.NewProber(q, logger),
		logger: logger,
	}
}
