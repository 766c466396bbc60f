package gemini

import (
	"encoding/binary"
	"regexp"
	"strconv"
)

// DefaultSampleRate is used when the audio mime type carries no rate.
const DefaultSampleRate = 24000

var rateRe = regexp.MustCompile(`rate=(\d+)`)

// SampleRate extracts the rate parameter of an "audio/L16;rate=24000" mime type.
func SampleRate(mimeType string) int {
	m := rateRe.FindStringSubmatch(mimeType)
	if m == nil {
		return DefaultSampleRate
	}
	rate, err := strconv.Atoi(m[1])
	if err != nil || rate <= 0 {
		return DefaultSampleRate
	}
	return rate
}

// PCMToWAV wraps little endian PCM samples in a 44 byte RIFF/WAVE header.
func PCMToWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	dataSize := len(pcm)

	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")

	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], uint16(bitsPerSample))

	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	copy(out[44:], pcm)
	return out
}
