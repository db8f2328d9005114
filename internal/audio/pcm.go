package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// ReadPCMFile reads a file of raw interleaved little-endian float32
// samples, the format produced by dumping a decoded recording buffer.
func ReadPCMFile(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pcm file: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("pcm file %s: size %d is not a multiple of 4", path, len(data))
	}

	samples := make([]float32, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}
