// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Samples are already float32 in the decoder, so they pass through as-is,
// interleaved for multi-channel files:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Use audio.Mono to fold them down for a mono output.
package vorbis
