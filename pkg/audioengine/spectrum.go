package audioengine

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/faiface/beep"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"playbar/pkg/spec"
)

// Analyser adalah node analisa frekuensi bersama. Source yang sedang
// diputar di-wrap lewat Wrap, sampelnya (mono) masuk ke ring buffer,
// lalu ByteFrequencyData menghitung spektrum 0-255 seperti getByteFrequencyData.
type Analyser struct {
	mu       sync.Mutex
	fftSize  int
	ring     []float64
	pos      int
	win      []float64
	buf      []float64
	smoothed []float64

	Smoothing float64
	MinDB     float64
	MaxDB     float64
}

func NewAnalyser(fftSize int) *Analyser {
	if fftSize < 2 {
		fftSize = spec.FFTSize
	}
	return &Analyser{
		fftSize:   fftSize,
		ring:      make([]float64, fftSize),
		win:       window.Blackman(fftSize),
		buf:       make([]float64, fftSize),
		smoothed:  make([]float64, fftSize/2),
		Smoothing: spec.SmoothingConstant,
		MinDB:     spec.MinDecibels,
		MaxDB:     spec.MaxDecibels,
	}
}

// FrequencyBinCount = setengah ukuran FFT.
func (a *Analyser) FrequencyBinCount() int { return a.fftSize / 2 }

// Write memasukkan sampel stereo (mix mono) ke ring buffer.
func (a *Analyser) Write(samples [][2]float64) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.pos] = mixMono(s[0], s[1])
		a.pos = (a.pos + 1) % a.fftSize
	}
	a.mu.Unlock()
}

// Reset menghapus ring buffer dan state smoothing.
func (a *Analyser) Reset() {
	a.mu.Lock()
	clear(a.ring)
	clear(a.smoothed)
	a.pos = 0
	a.mu.Unlock()
}

// ByteFrequencyData mengisi dst dengan snapshot spektrum terbaru.
// Mengembalikan jumlah bin yang ditulis.
func (a *Analyser) ByteFrequencyData(dst []byte) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Urutkan ring buffer secara kronologis lalu pasang window Blackman
	for i := 0; i < a.fftSize; i++ {
		a.buf[i] = a.ring[(a.pos+i)%a.fftSize] * a.win[i]
	}
	coeffs := fft.FFTReal(a.buf)

	bins := a.fftSize / 2
	if len(dst) < bins {
		bins = len(dst)
	}

	span := a.MaxDB - a.MinDB
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(coeffs[k]) / float64(a.fftSize)
		a.smoothed[k] = a.Smoothing*a.smoothed[k] + (1-a.Smoothing)*mag

		db := 20 * math.Log10(a.smoothed[k])
		v := 255 * (db - a.MinDB) / span
		dst[k] = byte(clamp(v, 0, 255))
	}
	return bins
}

// Wrap memasang analyser di antara source dan speaker.
func (a *Analyser) Wrap(s beep.Streamer) beep.Streamer {
	return &tap{s: s, a: a}
}

type tap struct {
	s beep.Streamer
	a *Analyser
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	if n > 0 {
		t.a.Write(samples[:n])
	}
	return n, ok
}

func (t *tap) Err() error { return t.s.Err() }
