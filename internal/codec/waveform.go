package codec

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

// Geometry parameter visual bar. Sensitivity disimpan sebagai level (12),
// gain efektif = level / 5.
type Geometry struct {
	BarCount     int
	BarSpacing   float64
	Sensitivity  float64
	MinBarHeight float64
	Easing       float64
	GlowRadius   int

	BarColor      color.NRGBA
	ProgressColor color.NRGBA
}

func DefaultGeometry() Geometry {
	return Geometry{
		BarCount:      spec.BarCount,
		BarSpacing:    spec.BarSpacing,
		Sensitivity:   spec.SensitivityLevel,
		MinBarHeight:  spec.MinBarHeight,
		Easing:        spec.EasingFactor,
		GlowRadius:    spec.GlowRadius,
		BarColor:      MustColor(spec.BarColor),
		ProgressColor: MustColor(spec.ProgressColor),
	}
}

func (g Geometry) Gain() float64 { return g.Sensitivity / 5 }

// Frame kondisi satu kali gambar.
type Frame struct {
	Width, Height float64
	StartX        float64
	CurrentTime   float64
	Duration      float64
}

func (f Frame) usable() float64 { return f.Width - f.StartX }

// ProgressX posisi playhead. 0 jika durasi belum diketahui.
func (f Frame) ProgressX() float64 {
	if f.Duration <= 0 || math.IsNaN(f.Duration) || math.IsInf(f.Duration, 0) {
		return 0
	}
	return f.StartX + f.CurrentTime/f.Duration*f.usable()
}

// Bar satu batang dengan setengah tinggi H (digambar simetris di tengah).
type Bar struct {
	X, W, H float64
	Played  bool
}

func (g Geometry) BarWidth(f Frame) float64 {
	if g.BarCount <= 0 {
		return 0
	}
	return (f.usable() - g.BarSpacing*float64(g.BarCount-1)) / float64(g.BarCount)
}

func (g Geometry) clampHeight(h, canvasH float64) float64 {
	return math.Max(g.MinBarHeight, math.Min(h, canvasH/2))
}

func (g Geometry) layout(f Frame, heights []float64) []Bar {
	w := g.BarWidth(f)
	px := f.ProgressX()
	bars := make([]Bar, len(heights))
	for i, h := range heights {
		x := f.StartX + float64(i)*(w+g.BarSpacing)
		bars[i] = Bar{X: x, W: w, H: h, Played: x <= px}
	}
	return bars
}

// StaticBars memetakan summary amplitudo (0..255) ke bar.
func (g Geometry) StaticBars(data []float64, f Frame) []Bar {
	heights := make([]float64, g.BarCount)
	for i := range heights {
		var v float64
		if i < len(data) {
			v = data[i]
		}
		h := audioengine.Boost(v, g.Gain()) * f.Height * spec.HeightRatio
		heights[i] = g.clampHeight(h, f.Height)
	}
	return g.layout(f, heights)
}

// LiveValue memilih bin spektrum untuk bar i secara kuadratik
// lalu meredam bar di ujung kiri supaya bass tidak mendominasi.
func LiveValue(spectrum []byte, i, n int) float64 {
	if len(spectrum) == 0 || n <= 0 {
		return 0
	}
	t := float64(i) / float64(n)
	idx := int(math.Floor(t * t * float64(len(spectrum)-1)))
	if idx >= len(spectrum) {
		idx = len(spectrum) - 1
	}
	cut := 1 - math.Pow(1-t, spec.LowEndExponent)
	return float64(spectrum[idx]) * cut
}

// LiveBars menggambar bar dari spektrum live dengan easing terhadap prev
// (koefisien sama untuk naik dan turun). prev diperbarui di tempat,
// nilai sebelum clamp yang disimpan.
func (g Geometry) LiveBars(spectrum []byte, prev []float64, f Frame) []Bar {
	heights := make([]float64, g.BarCount)
	for i := range heights {
		target := audioengine.Boost(LiveValue(spectrum, i, g.BarCount), g.Gain()) * f.Height * spec.HeightRatio
		h := target
		if i < len(prev) {
			h = prev[i] + (target-prev[i])*g.Easing
			prev[i] = h
		}
		heights[i] = g.clampHeight(h, f.Height)
	}
	return g.layout(f, heights)
}

// Paint menggambar bar di atas img (tidak membersihkan dulu).
func Paint(img *image.RGBA, bars []Bar, g Geometry, height float64) {
	cy := height / 2
	for _, b := range bars {
		col := g.BarColor
		if b.Played {
			col = g.ProgressColor
		}
		x0 := int(math.Floor(b.X))
		x1 := int(math.Floor(b.X + b.W))
		if x1 <= x0 {
			x1 = x0 + 1
		}
		top := int(math.Floor(cy - b.H))
		mid := int(math.Floor(cy))
		bottom := int(math.Ceil(cy + b.H))
		if bottom <= mid {
			bottom = mid + 1
		}

		glow(img, image.Rect(x0, top, x1, bottom), col, g.GlowRadius)

		src := image.NewUniform(col)
		draw.Draw(img, image.Rect(x0, top, x1, mid), src, image.Point{}, draw.Over)
		draw.Draw(img, image.Rect(x0, mid, x1, bottom), src, image.Point{}, draw.Over)
	}
}

// glow pendekatan shadowBlur: lapisan rect yang membesar dan makin pudar.
func glow(img *image.RGBA, r image.Rectangle, col color.NRGBA, radius int) {
	for k := radius; k >= 1; k-- {
		a := float64(col.A) / 255 * 0.12 * (1 - float64(k)/float64(radius+1))
		layer := image.NewUniform(WithAlpha(col, a))
		draw.Draw(img, r.Inset(-k).Intersect(img.Bounds()), layer, image.Point{}, draw.Over)
	}
}
