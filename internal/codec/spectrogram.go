package codec

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"playbar/pkg/audioengine"
)

// Spectrogram menggambar apa yang akan ditampilkan analyser live sepanjang
// lagu: satu kolom piksel per potongan sampel, bin rendah di bawah.
// Sumbu Y memakai pemetaan kuadratik yang sama dengan bar live.
func Spectrogram(img *image.RGBA, samples []float64, fftSize int, low, high color.NRGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || len(samples) == 0 {
		return
	}

	a := audioengine.NewAnalyser(fftSize)
	bins := make([]byte, a.FrequencyBinCount())
	lo, _ := colorful.MakeColor(low)
	hi, _ := colorful.MakeColor(high)

	step := len(samples) / w
	if step < 1 {
		step = 1
	}
	chunk := make([][2]float64, 0, fftSize)

	for x := 0; x < w; x++ {
		end := (x + 1) * step
		if end > len(samples) {
			break
		}
		// Hanya fftSize sampel terakhir yang tersisa di ring buffer
		from := max(x*step, end-a.FrequencyBinCount()*2)

		chunk = chunk[:0]
		for _, v := range samples[from:end] {
			chunk = append(chunk, [2]float64{v, v})
		}
		a.Write(chunk)
		a.ByteFrequencyData(bins)

		for y := 0; y < h; y++ {
			t := float64(h-1-y) / float64(h)
			v := float64(bins[int(t*t*float64(len(bins)-1))]) / 255
			if v == 0 {
				continue
			}
			r, g, bl := lo.BlendLab(hi, v).Clamped().RGB255()
			img.Set(b.Min.X+x, b.Min.Y+y, color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(v * 255))})
		}
	}
}
