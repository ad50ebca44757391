// Package audio decodes small sound clips into the 16-bit little-endian
// stereo PCM that Ebitengine's audio players consume.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Clip is decoded audio: interleaved 16-bit samples.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int // 1=mono, 2=stereo
}

// AU file header structure (24 bytes minimum)
type auHeader struct {
	Magic      uint32 // 0x2e736e64 (".snd")
	DataOffset uint32 // Offset to audio data (typically 24)
	DataSize   uint32 // Size of audio data in bytes (0xFFFFFFFF if unknown)
	Encoding   uint32 // Audio encoding format
	SampleRate uint32 // Sample rate in Hz
	Channels   uint32 // Number of interleaved channels
}

const (
	auMagic         = 0x2e736e64 // ".snd" in big-endian
	auEncodingULaw  = 1          // 8-bit μ-law
	auEncodingPCM16 = 3          // 16-bit linear PCM, big-endian
	auHeaderSize    = 24
	auUnknownSize   = 0xFFFFFFFF
)

// DecodeAU decodes a Sun/NeXT audio file (.au).
// μ-law and 16-bit linear PCM encodings are supported, mono or stereo.
func DecodeAU(r io.Reader) (*Clip, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU file: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("AU file too short: %d bytes (minimum %d)", len(data), auHeaderSize)
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read AU header: %w", err)
	}
	if header.Magic != auMagic {
		return nil, fmt.Errorf("invalid AU magic number: 0x%08x (expected 0x%08x)", header.Magic, auMagic)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (only 1-2 supported)", header.Channels)
	}
	if header.SampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate 0")
	}

	offset := int(header.DataOffset)
	if offset < auHeaderSize || offset > len(data) {
		return nil, fmt.Errorf("invalid data offset: %d (file size: %d)", offset, len(data))
	}
	payload := data[offset:]
	if header.DataSize != auUnknownSize && int(header.DataSize) < len(payload) {
		payload = payload[:header.DataSize]
	}

	clip := &Clip{SampleRate: int(header.SampleRate), Channels: int(header.Channels)}
	switch header.Encoding {
	case auEncodingULaw:
		clip.Samples = make([]int16, len(payload))
		for i, b := range payload {
			clip.Samples[i] = mulawToLinear(b)
		}
	case auEncodingPCM16:
		clip.Samples = make([]int16, len(payload)/2)
		for i := range clip.Samples {
			clip.Samples[i] = int16(binary.BigEndian.Uint16(payload[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d (supported: μ-law [1], PCM16 [3])", header.Encoding)
	}

	return clip, nil
}

// mulawToLinear expands a G.711 μ-law byte to 16-bit PCM.
func mulawToLinear(u byte) int16 {
	u = ^u
	sign := u & 0x80
	exponent := (u >> 4) & 0x07
	mantissa := int16(u & 0x0F)
	magnitude := ((mantissa << 3) + 0x84) << exponent
	magnitude -= 0x84
	if sign != 0 {
		return -magnitude
	}
	return magnitude
}

// Frames returns the number of sample frames (samples per channel).
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Stereo16 converts the clip to interleaved 16-bit little-endian stereo at
// the given sample rate, using linear interpolation when resampling.
func (c *Clip) Stereo16(sampleRate int) []byte {
	frames := c.Frames()
	if frames == 0 || sampleRate <= 0 {
		return nil
	}

	outFrames := int(int64(frames) * int64(sampleRate) / int64(c.SampleRate))
	out := make([]byte, outFrames*4)
	step := float64(c.SampleRate) / float64(sampleRate)

	for i := 0; i < outFrames; i++ {
		pos := float64(i) * step
		j := int(pos)
		frac := pos - float64(j)
		next := j + 1
		if next >= frames {
			next = frames - 1
		}

		for ch := 0; ch < 2; ch++ {
			src := ch
			if c.Channels == 1 {
				src = 0
			}
			a := float64(c.Samples[j*c.Channels+src])
			b := float64(c.Samples[next*c.Channels+src])
			v := int16(a + (b-a)*frac)
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(v))
		}
	}
	return out
}
