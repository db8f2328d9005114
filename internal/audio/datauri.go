package audio

import (
	"encoding/base64"
	"errors"
	"strings"
)

// DataURIPrefix is the required MIME prefix for uploaded audio payloads.
const DataURIPrefix = "data:audio"

var (
	// ErrNotAudio indicates the payload is missing or is not an audio data URI.
	ErrNotAudio = errors.New("audio: payload is not a base64 audio data URI")
	// ErrBadBase64 indicates the data URI body is not valid base64.
	ErrBadBase64 = errors.New("audio: invalid base64 payload")
)

// EncodeDataURI wraps an encoded WAV container in a base64 data URI.
func EncodeDataURI(wav []byte) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav)
}

// DecodeDataURI extracts the raw bytes from an audio data URI.
// The prefix check happens before any decoding: a payload that does not
// declare an audio MIME type is rejected outright.
func DecodeDataURI(s string) ([]byte, error) {
	if !strings.HasPrefix(s, DataURIPrefix) {
		return nil, ErrNotAudio
	}

	_, body, found := strings.Cut(s, ",")
	if !found || body == "" {
		return nil, ErrNotAudio
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrBadBase64
	}

	return data, nil
}
