package audioengine

import (
	"math"
	"math/rand"

	"playbar/pkg/spec"
)

// reportEvery: progress analisa dilaporkan setiap 50 bar
const reportEvery = 50

// Summarize membuat ringkasan amplitudo rata-rata (0-255) sebanyak n bar,
// skala yang sama dengan output analyser agar renderer bisa dipakai bersama.
// report (boleh nil) menerima fraksi bar yang sudah selesai.
func Summarize(samples []float64, n int, report func(float64)) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)

	step := len(samples) / n
	if step == 0 {
		// Sampel lebih sedikit dari bar: satu sampel per bar, sisanya nol
		for i := 0; i < n && i < len(samples); i++ {
			out[i] = math.Abs(samples[i]) * 255
		}
		return out
	}

	for i := 0; i < n; i++ {
		start := i * step
		end := start + step
		if end > len(samples) {
			end = len(samples)
		}

		var sum float64
		for j := start; j < end; j++ {
			sum += math.Abs(samples[j])
		}
		out[i] = (sum / float64(step)) * 255

		if report != nil && i%reportEvery == 0 {
			report(float64(i) / float64(n))
		}
	}
	return out
}

// Placeholder membuat waveform palsu [10, 50) saat decode gagal,
// supaya UI tetap menampilkan sesuatu.
func Placeholder(n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*(spec.PlaceholderMax-spec.PlaceholderMin) + spec.PlaceholderMin
	}
	return out
}
