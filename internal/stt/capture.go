package stt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// sampleRate is 16 kHz, the standard rate for speech recognition models.
	sampleRate = 16000

	framesPerBuffer = 512

	progressWidth = 20
)

// Capture records mono 16-bit audio from the default input device for the
// given duration and returns it as a WAV file in memory. A coarse progress
// bar is drawn on stderr while recording so the user knows the microphone
// is live.
func Capture(d time.Duration) ([]byte, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	buffer := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return nil, fmt.Errorf("opening input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("starting input stream: %w", err)
	}
	defer stream.Stop()

	fmt.Fprintf(os.Stderr, "\nRecording for %.0f seconds... speak now!\n", d.Seconds())

	totalFrames := int(d.Seconds() * sampleRate)
	samples := make([]int16, 0, totalFrames)
	start := time.Now()

	for len(samples) < totalFrames {
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("reading audio: %w", err)
		}
		samples = append(samples, buffer...)
		drawProgress(time.Since(start), d)
	}

	fmt.Fprint(os.Stderr, "\rrecording complete                              \n")

	return pcmToWAV(samples[:totalFrames], sampleRate, 1), nil
}

// drawProgress renders a single-line countdown bar on stderr.
func drawProgress(elapsed, total time.Duration) {
	if elapsed > total {
		elapsed = total
	}
	filled := int(float64(progressWidth) * elapsed.Seconds() / total.Seconds())
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled)
	remaining := (total - elapsed).Seconds()
	fmt.Fprintf(os.Stderr, "\r[%s] %.1fs remaining ", bar, remaining)
}

// pcmToWAV wraps 16-bit PCM samples in a WAV container.
func pcmToWAV(samples []int16, sampleRate, channels int) []byte {
	const bytesPerSample = 2
	dataLen := len(samples) * bytesPerSample

	buf := &bytes.Buffer{}
	buf.Grow(44 + dataLen)

	// RIFF header
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	// fmt subchunk
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))         // subchunk1 size
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))          // audio format (PCM)
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))   // channels
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate)) // sample rate
	byteRate := sampleRate * channels * bytesPerSample
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate)) // byte rate
	blockAlign := channels * bytesPerSample
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))       // block align
	_ = binary.Write(buf, binary.LittleEndian, uint16(bytesPerSample*8)) // bits per sample

	// data subchunk
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
