// SPDX-License-Identifier: EPL-2.0

// Package fade implements a sample-accurate linear fade-to-silence that
// ends in a mute state.
//
// A Controller is shared by two goroutines. The producer calls Trigger and
// the query methods; the real-time callback calls Apply once per output
// frame. Trigger is the only producer-side write. The ramp position and the
// mute flag are written only by Apply.
//
// State progression within one session:
//
//	idle (gain 1) --Trigger--> fading (gain falls 1/n per frame) --gain 0--> muted
//
// Muted is terminal until Reset.
package fade

import (
	"sync/atomic"
	"time"
)

// Duration of the fade-out ramp.
const Duration = 20 * time.Millisecond

// Samples returns the ramp length in frames for sampleRate. It is at
// least 1 so that very low rates still fade (in a single frame).
func Samples(sampleRate int) int {
	n := sampleRate * int(Duration/time.Millisecond) / 1000
	return max(n, 1)
}

// Controller is the fade/mute state machine applied by the audio callback.
type Controller struct {
	total int64 // ramp length in frames, fixed after New/Reset

	requested atomic.Bool  // written by Trigger
	remaining atomic.Int64 // ramp frames left; gain == remaining/total
	muted     atomic.Bool  // written by Apply
}

// New returns an idle controller with a 20ms ramp at sampleRate.
func New(sampleRate int) *Controller {
	c := &Controller{total: int64(Samples(sampleRate))}
	c.Reset()
	return c
}

// Reset returns to idle: not fading, gain 1, not muted. It must not run
// concurrently with Apply.
func (c *Controller) Reset() {
	c.requested.Store(false)
	c.remaining.Store(c.total)
	c.muted.Store(false)
}

// FadeSamples is the ramp length in frames.
func (c *Controller) FadeSamples() int { return int(c.total) }

// Trigger requests a fade-out. Calling it again has no effect on a ramp
// that is already running or finished.
func (c *Controller) Trigger() {
	c.requested.Store(true)
}

// Apply scales one sample and advances the ramp by one frame.
// Callback only.
func (c *Controller) Apply(s float32) float32 {
	if c.muted.Load() {
		return 0
	}
	if !c.requested.Load() {
		return s
	}

	left := c.remaining.Load()
	out := s * float32(float64(left)/float64(c.total))

	left--
	if left <= 0 {
		c.remaining.Store(0)
		c.muted.Store(true)
		return out
	}
	c.remaining.Store(left)

	return out
}

// Gain is the factor the next fading frame will be scaled by.
func (c *Controller) Gain() float64 {
	return float64(c.remaining.Load()) / float64(c.total)
}

// Fading reports whether a fade has been requested.
func (c *Controller) Fading() bool { return c.requested.Load() }

// Faded reports whether a requested fade has run down to zero gain.
func (c *Controller) Faded() bool {
	return c.requested.Load() && c.remaining.Load() == 0
}

// Muted reports whether output is silenced.
func (c *Controller) Muted() bool { return c.muted.Load() }
