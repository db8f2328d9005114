// Package audio serializes recorded PCM samples into an uncompressed WAV
// container suitable for upload to the transcription upstream.
package audio

import (
	"encoding/binary"
	"errors"
	"math"
)

// HeaderSize is the fixed size of the WAV header emitted by EncodeWAV.
const HeaderSize = 44

const bytesPerSample = 2 // 16-bit PCM

var (
	// ErrNoSamples indicates the sample slice is nil.
	ErrNoSamples = errors.New("audio: no samples")
	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("audio: sample rate must be positive")
	// ErrInvalidChannels indicates a non-positive channel count.
	ErrInvalidChannels = errors.New("audio: channel count must be positive")
)

// EncodeWAV serializes interleaved float32 samples in [-1, 1] into a
// 16-bit little-endian PCM WAV container.
//
// The output is deterministic: identical inputs always produce
// byte-identical containers. Negative samples scale by 32768 and
// non-negative samples by 32767, matching the asymmetric int16 range.
// A zero-length sample slice still yields a valid, playable header.
func EncodeWAV(samples []float32, sampleRate, channels int) ([]byte, error) {
	if samples == nil {
		return nil, ErrNoSamples
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	dataLen := len(samples) * bytesPerSample
	buf := make([]byte, HeaderSize+dataLen)

	// RIFF chunk descriptor
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen)) // total size - 8
	copy(buf[8:12], "WAVE")

	// fmt subchunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // subchunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*channels*bytesPerSample)) // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], uint16(channels*bytesPerSample))            // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                                         // bits per sample

	// data subchunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))

	offset := HeaderSize
	for _, s := range samples {
		binary.LittleEndian.PutUint16(buf[offset:offset+2], uint16(quantize(s)))
		offset += 2
	}

	return buf, nil
}

// quantize converts a float sample to int16 with asymmetric scaling,
// truncating toward zero and clamping out-of-range input.
func quantize(s float32) int16 {
	var scaled float64
	if s < 0 {
		scaled = float64(s) * 32768
	} else {
		scaled = float64(s) * 32767
	}
	scaled = math.Trunc(scaled)
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(scaled)
}
