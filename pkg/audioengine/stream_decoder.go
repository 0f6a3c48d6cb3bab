package audioengine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

var ErrUnsupportedFormat = errors.New("format audio tidak didukung")

// PCM adalah hasil decode offline: satu channel, nilai -1..1.
type PCM struct {
	Samples    []float64
	SampleRate int
}

// Duration dalam detik.
func (p PCM) Duration() float64 {
	if p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// DecodeMono men-decode seluruh resource (WAV atau MP3) menjadi satu channel.
// name hanya dipakai untuk pesan error.
func DecodeMono(data []byte, name string) (PCM, error) {
	if isWAV(data) {
		return decodeWAV(data)
	}

	pcm, err := decodeMP3(data)
	if err == nil {
		return pcm, nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	return PCM{}, fmt.Errorf("%w: %s (%v)", ErrUnsupportedFormat, ext, err)
}

func decodeWAV(data []byte) (PCM, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return PCM{}, fmt.Errorf("file wav tidak valid")
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || bitDepth < 8 {
		return PCM{}, fmt.Errorf("format wav tidak valid: %d ch %d bit", channels, bitDepth)
	}
	full := float64(int64(1) << (bitDepth - 1))

	// Baca 1 detik per siklus I/O, sama seperti encoder stream
	intBuf := &audio.IntBuffer{
		Data:   make([]int, int(dec.SampleRate)*channels),
		Format: &audio.Format{NumChannels: channels, SampleRate: int(dec.SampleRate)},
	}

	out := PCM{SampleRate: int(dec.SampleRate)}
	for {
		n, err := dec.PCMBuffer(intBuf)
		if err != nil && err != io.EOF {
			return PCM{}, err
		}
		if n == 0 {
			break
		}

		// Down-mix ke mono per frame
		for i := 0; i+channels <= n; i += channels {
			var sum float64
			for c := 0; c < channels; c++ {
				v := float64(intBuf.Data[i+c])
				if bitDepth == 8 {
					v -= 128 // wav 8-bit unsigned
				}
				sum += v / full
			}
			out.Samples = append(out.Samples, clamp(sum/float64(channels), -1, 1))
		}

		if err == io.EOF {
			break
		}
	}

	if len(out.Samples) == 0 {
		return PCM{}, fmt.Errorf("wav tanpa sampel")
	}
	return out, nil
}

func decodeMP3(data []byte) (PCM, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return PCM{}, err
	}

	// go-mp3 selalu menghasilkan 16-bit LE stereo
	raw, err := io.ReadAll(d)
	if err != nil {
		return PCM{}, err
	}

	out := PCM{SampleRate: d.SampleRate(), Samples: make([]float64, 0, len(raw)/4)}
	for i := 0; i+4 <= len(raw); i += 4 {
		l := int16(binary.LittleEndian.Uint16(raw[i:]))
		r := int16(binary.LittleEndian.Uint16(raw[i+2:]))
		out.Samples = append(out.Samples, mixMono(float64(l)/32768.0, float64(r)/32768.0))
	}

	if len(out.Samples) == 0 {
		return PCM{}, fmt.Errorf("mp3 tanpa sampel")
	}
	return out, nil
}
