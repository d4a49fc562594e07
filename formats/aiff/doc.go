// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files.
//
// This package uses github.com/go-audio/aiff. AIFF is big-endian PCM and
// common on macOS; the decoder hides the byte order and returns float32
// samples in [-1.0, 1.0):
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
//	source, err := decoder.Decode(file)
//
// Supported: uncompressed PCM at 8, 16, 24 or 32 bits, any channel count.
// AIFF-C (compressed) files are rejected.
package aiff
