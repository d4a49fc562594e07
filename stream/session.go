// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"github.com/ik5/audring/fade"
	"github.com/ik5/audring/ring"
)

// session is the state of one started stream. Everything the callback
// touches is created here, so a restart can never observe the previous
// session's buffer or fade state.
type session struct {
	sampleRate int
	buf        *ring.Buffer
	fader      *fade.Controller
	callback   *Callback
	stream     Stream
}

func newSession(sampleRate, capacity int) (*session, error) {
	buf, err := ring.New(capacity)
	if err != nil {
		return nil, err
	}

	fader := fade.New(sampleRate)

	return &session{
		sampleRate: sampleRate,
		buf:        buf,
		fader:      fader,
		callback:   NewCallback(buf, fader),
	}, nil
}
