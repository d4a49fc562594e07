// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	ErrAlreadyActive          = errors.New("stream already active")
	ErrNotActive              = errors.New("stream not active")
	ErrDriverInit             = errors.New("audio driver initialization failed")
	ErrInvalidSampleRate      = errors.New("sample rate must be positive")
	ErrInvalidFramesPerBuffer = errors.New("frames per buffer must be positive")
	ErrNoDriver               = errors.New("no audio driver")
)
