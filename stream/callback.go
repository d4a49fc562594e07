// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"github.com/ik5/audring/fade"
	"github.com/ik5/audring/ring"
)

// Callback renders output frames from a ring buffer through a fade
// controller. It is the only consumer of the buffer.
type Callback struct {
	buf   *ring.Buffer
	fader *fade.Controller
}

// NewCallback returns a Callback that drains buf through fader.
func NewCallback(buf *ring.Buffer, fader *fade.Controller) *Callback {
	return &Callback{buf: buf, fader: fader}
}

// Render fills out one frame at a time. It satisfies RenderFunc.
func (c *Callback) Render(out []float32) {
	for i := range out {
		if c.fader.Muted() {
			// Keep the buffer moving so no stale backlog survives the mute.
			c.buf.Pop()
			out[i] = 0
			continue
		}

		s, ok := c.buf.Pop()
		if !ok {
			// Underrun: silence, and a running fade holds its gain.
			out[i] = 0
			continue
		}
		out[i] = c.fader.Apply(s)
	}
}
