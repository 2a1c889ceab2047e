// Package wav implements the codec boundary of the decomposition core:
// RIFF/WAVE decoding to mono float64 samples and single-channel 32-bit
// float PCM encoding.
//
// Multi-channel input is downmixed to mono by unweighted channel averaging
// during decode, so the decomposition core only ever sees mono samples.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDecode indicates malformed or truncated WAV data.
	ErrDecode = errors.New("wav: decode failed")

	// ErrUnsupported indicates a WAV encoding this codec does not handle.
	ErrUnsupported = errors.New("wav: unsupported encoding")

	// ErrInvalidInput indicates invalid encode parameters.
	ErrInvalidInput = errors.New("wav: invalid input")
)

// Format identifies an audio container by its header bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatMP3
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// DetectFormat sniffs the container format from file header bytes.
func DetectFormat(data []byte) Format {
	if len(data) < 12 {
		return FormatUnknown
	}

	if bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")) {
		return FormatWAV
	}

	if bytes.Equal(data[0:3], []byte("ID3")) {
		return FormatMP3
	}

	// MPEG frame sync: 0xFF followed by 0xE0 bits set.
	if data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return FormatMP3
	}

	return FormatUnknown
}

type fmtChunk struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// Decode parses WAV data and returns mono float64 samples in [-1, 1] plus
// the sample rate.
//
// Supported encodings: integer PCM at 8, 16, 24 and 32 bits, and IEEE float
// at 32 and 64 bits. Multi-channel audio is averaged down to mono.
func Decode(data []byte) ([]float64, int, error) {
	if DetectFormat(data) != FormatWAV {
		return nil, 0, fmt.Errorf("%w: missing RIFF/WAVE header", ErrDecode)
	}

	var format *fmtChunk
	var pcm []byte

	// Walk the chunk list after the 12-byte RIFF header.
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		if size < 0 || body+size > len(data) {
			return nil, 0, fmt.Errorf("%w: truncated %q chunk", ErrDecode, id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("%w: short fmt chunk", ErrDecode)
			}

			format = &fmtChunk{
				audioFormat:   binary.LittleEndian.Uint16(data[body : body+2]),
				numChannels:   binary.LittleEndian.Uint16(data[body+2 : body+4]),
				sampleRate:    binary.LittleEndian.Uint32(data[body+4 : body+8]),
				bitsPerSample: binary.LittleEndian.Uint16(data[body+14 : body+16]),
			}
		case "data":
			pcm = data[body : body+size]
		}

		// Chunks are word-aligned.
		pos = body + size + size%2
	}

	if format == nil {
		return nil, 0, fmt.Errorf("%w: no fmt chunk", ErrDecode)
	}

	if pcm == nil {
		return nil, 0, fmt.Errorf("%w: no data chunk", ErrDecode)
	}

	if format.numChannels == 0 || format.sampleRate == 0 {
		return nil, 0, fmt.Errorf("%w: invalid fmt chunk", ErrDecode)
	}

	interleaved, err := decodeSamples(pcm, format)
	if err != nil {
		return nil, 0, err
	}

	return downmix(interleaved, int(format.numChannels)), int(format.sampleRate), nil
}

func decodeSamples(pcm []byte, format *fmtChunk) ([]float64, error) {
	bytesPerSample := int(format.bitsPerSample) / 8
	if bytesPerSample == 0 {
		return nil, fmt.Errorf("%w: zero bits per sample", ErrDecode)
	}

	count := len(pcm) / bytesPerSample
	out := make([]float64, count)

	switch {
	case format.audioFormat == formatPCM && format.bitsPerSample == 8:
		// 8-bit WAV is unsigned with a 128 offset.
		for i := range count {
			out[i] = (float64(pcm[i]) - 128) / 128
		}
	case format.audioFormat == formatPCM && format.bitsPerSample == 16:
		for i := range count {
			v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
			out[i] = float64(v) / 32768
		}
	case format.audioFormat == formatPCM && format.bitsPerSample == 24:
		for i := range count {
			b := pcm[3*i : 3*i+3]
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v -= 0x1000000
			}
			out[i] = float64(v) / 8388608
		}
	case format.audioFormat == formatPCM && format.bitsPerSample == 32:
		for i := range count {
			v := int32(binary.LittleEndian.Uint32(pcm[4*i:]))
			out[i] = float64(v) / 2147483648
		}
	case format.audioFormat == formatIEEEFloat && format.bitsPerSample == 32:
		for i := range count {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(pcm[4*i:])))
		}
	case format.audioFormat == formatIEEEFloat && format.bitsPerSample == 64:
		for i := range count {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(pcm[8*i:]))
		}
	default:
		return nil, fmt.Errorf("%w: format %d with %d bits per sample",
			ErrUnsupported, format.audioFormat, format.bitsPerSample)
	}

	return out, nil
}

func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)

	for i := range frames {
		sum := 0.0
		for ch := range channels {
			sum += interleaved[i*channels+ch]
		}
		out[i] = sum / float64(channels)
	}

	return out
}

// Encode serializes mono samples as a single-channel 32-bit IEEE float WAV.
func Encode(samples []float64, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidInput, sampleRate)
	}

	const (
		channels      = 1
		bitsPerSample = 32
	)

	dataSize := 4 * len(samples)
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(formatIEEEFloat))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bitsPerSample/8))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))

	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(float32(s)))
	}

	return buf.Bytes(), nil
}
