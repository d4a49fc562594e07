// SPDX-License-Identifier: EPL-2.0

// Package audring plays mono float32 audio through a real-time callback fed
// by a lock-free single-producer single-consumer ring buffer.
//
// The module is split by role:
//
//   - ring: the SPSC sample ring. The producer pushes, the audio thread pops,
//     and neither side ever blocks or allocates.
//   - fade: the 20ms linear fade-to-silence controller and mute latch.
//   - stream: Output, the control surface (Start, Stop, Push, FadeOut and
//     the state queries), the per-frame render callback, and the Feed helper
//     that pumps an audio.Source into an Output with backpressure.
//   - driver/portaudio, driver/oto, driver/wavfile: stream.Driver
//     implementations for a PortAudio device, an Oto player and a WAV file.
//   - audio and formats/*: decoded sources (WAV, AIFF, MP3, Ogg Vorbis) and
//     the mono downmix.
//
// # Quick Start
//
//	out, err := stream.NewOutput(portaudio.Driver{})
//	if err != nil {
//	    return err
//	}
//	if err := out.Start(44100); err != nil {
//	    return err
//	}
//	defer out.Stop()
//
//	n, err := out.Push(samples) // n may be short when the ring is full
//
//	out.FadeOut()
//	_ = stream.WaitFaded(ctx, out, 5*time.Millisecond)
//
// # Threading
//
// Exactly one goroutine may push (the producer) while the device thread
// renders (the consumer). Start and Stop are serialized against each other
// and may be called from any goroutine. Clear must not overlap rendering.
//
// The cmd/audring command ties it all together for files on disk.
package audring
