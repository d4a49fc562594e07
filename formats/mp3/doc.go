// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer 3 files with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the file's own sample
// rate. Wrap it with audio.Mono before feeding a mono output:
//
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // ErrInvalidStream
//	}
//	mono := audio.Mono(source)
package mp3
