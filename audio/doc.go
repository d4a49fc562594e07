// SPDX-License-Identifier: EPL-2.0

// Package audio provides the producer-side sample sources.
//
// # Source Interface
//
// Decoders and processors implement Source so they can be chained:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples
// returns io.EOF once the stream is exhausted:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Channel Mixing
//
// Output streams are mono. MonoMixer averages the channels of a decoded
// file; Mono wraps a source only when it needs it:
//
//	mono := audio.Mono(source)
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("intro.WAV")
package audio
