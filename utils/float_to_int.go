// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1,1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 on both sides keeps +1 from overflowing.
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps 16-bit PCM onto [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// PCMScale is the full-scale magnitude of signed PCM at bitDepth. Unknown
// depths are treated as 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}
