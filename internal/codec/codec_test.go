package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		err  bool
	}{
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}, false},
		{"#f00", color.NRGBA{255, 0, 0, 255}, false},
		{"rgba(255,0,0,0.84)", color.NRGBA{255, 0, 0, 214}, false},
		{"rgba(255, 0, 0, 0.8)", color.NRGBA{255, 0, 0, 204}, false},
		{"rgb(1,2,3)", color.NRGBA{1, 2, 3, 255}, false},
		{"merah", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseColor(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.err && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func testFrame() Frame {
	return Frame{Width: 1000, Height: 100}
}

func TestStaticBarsHeights(t *testing.T) {
	g := DefaultGeometry()
	data := make([]float64, g.BarCount)
	data[0] = 255
	data[1] = 50

	bars := g.StaticBars(data, testFrame())
	if len(bars) != g.BarCount {
		t.Fatalf("len = %d", len(bars))
	}
	if w := bars[0].W; w != 4 {
		t.Errorf("bar width = %f, want 4", w)
	}
	if h := bars[0].H; math.Abs(h-45) > 1e-9 {
		t.Errorf("full bar = %f, want 45", h)
	}
	want := 50.0 / 255 * 2.4 * 100 * 0.45
	if h := bars[1].H; math.Abs(h-want) > 1e-9 {
		t.Errorf("bar 1 = %f, want %f", h, want)
	}
	for i, b := range bars {
		if b.H < g.MinBarHeight || b.H > 50 {
			t.Fatalf("bar %d height %f out of range", i, b.H)
		}
		if b.X < 0 {
			t.Fatalf("bar %d x %f", i, b.X)
		}
	}
	if bars[2].H != g.MinBarHeight {
		t.Errorf("silent bar = %f, want min height", bars[2].H)
	}
}

func TestStaticBarsShortData(t *testing.T) {
	g := DefaultGeometry()
	bars := g.StaticBars([]float64{255}, testFrame())
	if len(bars) != g.BarCount || bars[len(bars)-1].H != g.MinBarHeight {
		t.Errorf("short data not padded")
	}
}

func playedCount(bars []Bar) int {
	n := 0
	for _, b := range bars {
		if b.Played {
			n++
		}
	}
	return n
}

func TestPlayedBarsFollowProgress(t *testing.T) {
	g := DefaultGeometry()
	data := make([]float64, g.BarCount)

	f := testFrame()
	f.Duration = 10
	f.CurrentTime = 5
	if n := playedCount(g.StaticBars(data, f)); n != 126 {
		t.Errorf("played at half = %d, want 126", n)
	}

	last := -1
	for ct := 0.0; ct <= 10; ct += 0.25 {
		f.CurrentTime = ct
		n := playedCount(g.StaticBars(data, f))
		if n < last {
			t.Fatalf("played count dropped at t=%f: %d < %d", ct, n, last)
		}
		last = n
	}
	if last != g.BarCount {
		t.Errorf("played at end = %d", last)
	}
}

func TestUnknownDurationPlaysNothing(t *testing.T) {
	g := DefaultGeometry()
	f := Frame{Width: 1000, Height: 100, StartX: 140, CurrentTime: 3, Duration: math.NaN()}
	if n := playedCount(g.StaticBars(nil, f)); n != 0 {
		t.Errorf("played = %d, want 0", n)
	}
}

func TestLiveBarsEasing(t *testing.T) {
	g := DefaultGeometry()
	spectrum := make([]byte, 512)
	for i := range spectrum {
		spectrum[i] = 255
	}
	prev := make([]float64, g.BarCount)

	bars := g.LiveBars(spectrum, prev, testFrame())
	if bars[0].H != g.MinBarHeight {
		t.Errorf("low end bar = %f, want min", bars[0].H)
	}
	if want := 45 * 1.5; math.Abs(prev[125]-want) > 1e-9 {
		t.Errorf("eased bar = %f, want %f", prev[125], want)
	}
	if bars[125].H != 50 {
		t.Errorf("overshoot should clamp to half height, got %f", bars[125].H)
	}

	for k := 0; k < 40; k++ {
		g.LiveBars(spectrum, prev, testFrame())
	}
	if math.Abs(prev[125]-45) > 1e-3 {
		t.Errorf("bar should converge to target, got %f", prev[125])
	}

	silent := make([]byte, 512)
	before := prev[125]
	g.LiveBars(silent, prev, testFrame())
	if prev[125] >= before {
		t.Errorf("bar should ease down: %f -> %f", before, prev[125])
	}
}

func TestLiveValueEmpty(t *testing.T) {
	if v := LiveValue(nil, 3, 250); v != 0 {
		t.Errorf("LiveValue(nil) = %f", v)
	}
}

func TestPaintColors(t *testing.T) {
	g := DefaultGeometry()
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	Paint(img, []Bar{
		{X: 10, W: 4, H: 20, Played: true},
		{X: 100, W: 4, H: 20},
	}, g, 100)

	played := img.RGBAAt(11, 45)
	if played.R != 255 || played.G != 255 || played.B != 255 {
		t.Errorf("played pixel = %v, want white", played)
	}
	unplayed := img.RGBAAt(101, 55)
	if unplayed.R == 0 || unplayed.G != 0 || unplayed.B != 0 {
		t.Errorf("unplayed pixel = %v, want red", unplayed)
	}
	if empty := img.RGBAAt(150, 10); empty.A != 0 {
		t.Errorf("background pixel = %v", empty)
	}
}

func TestSurfaceResizeAndScale(t *testing.T) {
	s := NewSurface(1060, 100, 60)
	if w, h := s.Size(); w != 1000 || h != 100 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if sf := s.ScaleFactor(); math.Abs(sf-1000.0/1060) > 1e-12 {
		t.Errorf("scale = %f", sf)
	}
	if s.Resize() {
		t.Error("resize without change should be false")
	}

	s.SetClientSize(660, 80)
	if !s.Resize() {
		t.Error("resize should report change")
	}
	if w, h := s.Size(); w != 600 || h != 80 {
		t.Errorf("size after resize = %dx%d", w, h)
	}

	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil || img.Bounds().Dx() != 600 {
		t.Errorf("png decode = %v %v", img, err)
	}
}

func TestProcessArtworkSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 10; x < 30; x++ {
		for y := 0; y < 20; y++ {
			src.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	art, err := ProcessArtwork(&buf, 10)
	if err != nil {
		t.Fatal(err)
	}
	if art.Bounds().Dx() != 10 || art.Bounds().Dy() != 10 {
		t.Fatalf("art bounds = %v", art.Bounds())
	}
	if c := art.RGBAAt(0, 0); c.B != 255 {
		t.Errorf("crop not centered: %v", c)
	}

	img := image.NewRGBA(image.Rect(0, 0, 100, 30))
	DrawArtwork(img, art, 150)
	if c := img.RGBAAt(5, 15); c.B != 255 {
		t.Errorf("artwork not drawn: %v", c)
	}
}

func TestDrawCenteredText(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 40))
	DrawCenteredText(img, "Loading Audio", 100, 20, color.White)

	var inked int
	for y := 0; y < 40; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y).A != 0 {
				inked++
				if x < 100-TextWidth("Loading Audio")/2-1 {
					t.Fatalf("ink left of text box at %d", x)
				}
			}
		}
	}
	if inked == 0 {
		t.Error("no text drawn")
	}
}

func TestSpectrogramLowToneStaysLow(t *testing.T) {
	samples := make([]float64, 200*256)
	for i := range samples {
		samples[i] = math.Sin(float64(i) / 10)
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	Spectrogram(img, samples, 1024, MustColor("#ff0000"), MustColor("#ffffff"))

	rowAlpha := func(y int) int {
		var sum int
		for x := 0; x < 100; x++ {
			sum += int(img.RGBAAt(x, y).A)
		}
		return sum
	}
	// bin ~16 dari 512 jatuh di sekitar 18% tinggi dari bawah
	peak := 0
	for y := 35; y < 50; y++ {
		peak = max(peak, rowAlpha(y))
	}
	if peak == 0 {
		t.Fatal("tone not drawn")
	}
	if top := rowAlpha(0); top >= peak {
		t.Errorf("top row %d should be darker than tone row %d", top, peak)
	}
}

func TestSpectrogramEmpty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Spectrogram(img, nil, 1024, MustColor("#ff0000"), MustColor("#ffffff"))
	if img.RGBAAt(5, 5).A != 0 {
		t.Error("empty input should leave image blank")
	}
}
