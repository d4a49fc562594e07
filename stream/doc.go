// SPDX-License-Identifier: EPL-2.0

// Package stream connects a non-real-time sample producer to a real-time
// audio output.
//
// An Output owns at most one active session. A session is created by Start
// and destroyed by Stop; it holds a ring buffer, a fade controller and the
// driver stream that pulls audio through a Callback:
//
//	out, _ := stream.NewOutput(portaudio.Driver{})
//	if err := out.Start(44100); err != nil {
//	    return err
//	}
//	defer out.Stop()
//
//	n, err := out.Push(samples) // n < len(samples): retry the rest later
//
//	out.FadeOut()               // 20ms ramp to silence, then muted
//
// # Drivers
//
// The audio device is reached through the Driver interface. The driver
// opens a mono float32 stream and invokes the RenderFunc it was given on
// its own thread, once per block of frames. Implementations live under
// driver/: PortAudio, Oto and a WAV file renderer. Tests use a manual driver
// that calls the RenderFunc synchronously.
//
// # Real-time contract
//
// Callback.Render never blocks, allocates, locks or logs. On underrun it
// writes silence and a running fade keeps its gain. Once muted it keeps draining one buffered sample per
// frame and writes silence.
//
// # Producer helpers
//
// Feed pumps an audio.Source into an Output, honouring backpressure.
// WaitDrained and WaitFaded poll the output until playback has caught up
// or a fade has finished.
package stream
