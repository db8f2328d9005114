package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeWAV_Header(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1, -1}

	wav, err := EncodeWAV(samples, 44100, 1)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	dataLen := len(samples) * 2
	if len(wav) != HeaderSize+dataLen {
		t.Fatalf("expected %d bytes, got %d", HeaderSize+dataLen, len(wav))
	}

	if string(wav[0:4]) != "RIFF" {
		t.Errorf("expected RIFF marker, got %q", wav[0:4])
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+dataLen) {
		t.Errorf("expected chunk size %d, got %d", 36+dataLen, got)
	}
	if string(wav[8:12]) != "WAVE" {
		t.Errorf("expected WAVE marker, got %q", wav[8:12])
	}
	if string(wav[12:16]) != "fmt " {
		t.Errorf("expected fmt marker, got %q", wav[12:16])
	}
	if got := binary.LittleEndian.Uint32(wav[16:20]); got != 16 {
		t.Errorf("expected fmt subchunk size 16, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("expected PCM format tag, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("expected 1 channel, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 44100 {
		t.Errorf("expected sample rate 44100, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 88200 {
		t.Errorf("expected byte rate 88200, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[32:34]); got != 2 {
		t.Errorf("expected block align 2, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("expected 16 bits per sample, got %d", got)
	}
	if string(wav[36:40]) != "data" {
		t.Errorf("expected data marker, got %q", wav[36:40])
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(dataLen) {
		t.Errorf("expected data length %d, got %d", dataLen, got)
	}
}

func TestEncodeWAV_Quantization(t *testing.T) {
	tests := []struct {
		name   string
		sample float32
		want   int16
	}{
		{"zero", 0, 0},
		{"full_scale_positive", 1, 32767},
		{"full_scale_negative", -1, -32768},
		{"half_positive", 0.5, 16383},
		{"half_negative", -0.5, -16384},
		{"clamp_above", 1.5, 32767},
		{"clamp_below", -1.5, -32768},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			wav, err := EncodeWAV([]float32{test.sample}, 44100, 1)
			if err != nil {
				t.Fatalf("EncodeWAV failed: %v", err)
			}

			got := int16(binary.LittleEndian.Uint16(wav[HeaderSize : HeaderSize+2]))
			if got != test.want {
				t.Errorf("expected %d, got %d", test.want, got)
			}
		})
	}
}

func TestEncodeWAV_Deterministic(t *testing.T) {
	samples := []float32{0.1, -0.2, 0.3, -0.4, 0.5}

	first, err := EncodeWAV(samples, 16000, 2)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}
	second, err := EncodeWAV(samples, 16000, 2)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical input produced different containers")
	}
}

func TestEncodeWAV_EmptySamples(t *testing.T) {
	wav, err := EncodeWAV([]float32{}, 44100, 1)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if len(wav) != HeaderSize {
		t.Fatalf("expected header-only container of %d bytes, got %d", HeaderSize, len(wav))
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 0 {
		t.Errorf("expected zero data length, got %d", got)
	}
}

func TestEncodeWAV_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		samples  []float32
		rate     int
		channels int
		wantErr  error
	}{
		{"nil_samples", nil, 44100, 1, ErrNoSamples},
		{"zero_rate", []float32{0}, 0, 1, ErrInvalidRate},
		{"negative_rate", []float32{0}, -1, 1, ErrInvalidRate},
		{"zero_channels", []float32{0}, 44100, 0, ErrInvalidChannels},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := EncodeWAV(test.samples, test.rate, test.channels)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
