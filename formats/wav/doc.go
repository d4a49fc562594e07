// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files into an audio.Source.
//
// Decoding is done by github.com/go-audio/wav. Integer PCM at 8, 16, 24 and
// 32 bits is supported, with any channel count and sample rate:
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // ErrNotWavFile, ErrOnlyPCMSupported, ...
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples come out as float32 in [-1.0, 1.0).
package wav
