// ABOUTME: Alarm tone synthesis into a 16-bit mono PCM WAV clip.
// ABOUTME: A sawtooth sweeping 1200 to 800 Hz under a swell envelope.
package timer

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	DefaultSampleRate = 22050

	toneSeconds = 1.0
	sweepFrom   = 1200.0
	sweepTo     = 800.0
	sweepSecs   = 0.5
)

// envelope is the gain at each breakpoint as a fraction of peak volume.
var envelope = []struct{ at, gain float64 }{
	{0, 0},
	{0.1, 1},
	{0.4, 1.0 / 3},
	{0.7, 1},
	{1.0, 0},
}

// Gain returns the envelope gain at time t (seconds) for volume 0-100.
func Gain(t float64, volume int) float64 {
	peak := float64(min(max(volume, 0), 100)) / 100
	for i := 1; i < len(envelope); i++ {
		a, b := envelope[i-1], envelope[i]
		if t <= b.at {
			frac := (t - a.at) / (b.at - a.at)
			return peak * (a.gain + (b.gain-a.gain)*max(frac, 0))
		}
	}
	return 0
}

// Frequency returns the sweep frequency at time t: exponential from 1200 Hz
// to 800 Hz over half a second, then held.
func Frequency(t float64) float64 {
	if t >= sweepSecs {
		return sweepTo
	}
	return sweepFrom * math.Pow(sweepTo/sweepFrom, t/sweepSecs)
}

// AlarmPCM renders the tone as signed 16-bit samples.
func AlarmPCM(volume, sampleRate int) []int16 {
	n := int(toneSeconds * float64(sampleRate))
	out := make([]int16, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / float64(sampleRate)
		phase += Frequency(t) / float64(sampleRate)
		phase -= math.Floor(phase)
		saw := 2*phase - 1
		out[i] = int16(saw * Gain(t, volume) * math.MaxInt16)
	}
	return out
}

// AlarmWAV renders the tone as a RIFF/WAVE file.
func AlarmWAV(volume, sampleRate int) []byte {
	samples := AlarmPCM(volume, sampleRate)
	dataLen := uint32(len(samples) * 2)

	var buf bytes.Buffer
	buf.Grow(44 + int(dataLen))
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, struct {
		Size          uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{16, 1, 1, uint32(sampleRate), uint32(sampleRate) * 2, 2, 16})

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataLen)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
