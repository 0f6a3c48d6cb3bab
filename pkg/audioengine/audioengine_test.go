package audioengine

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestSummarizeLengthAndRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	samples := make([]float64, 10007)
	for i := range samples {
		samples[i] = rng.Float64()*2 - 1
	}

	for _, n := range []int{1, 3, 50, 200, 250, 1000, 20000} {
		got := Summarize(samples, n, nil)
		if len(got) != n {
			t.Fatalf("Summarize(n=%d) len = %d", n, len(got))
		}
		for i, v := range got {
			if v < 0 || v > 255 {
				t.Fatalf("n=%d bar %d = %f out of [0,255]", n, i, v)
			}
		}
	}
}

func TestSummarizeMeanAbs(t *testing.T) {
	// 4 bar, 2 sampel per bar
	samples := []float64{0.5, -0.5, 1, -1, 0, 0, -0.25, 0.75}
	got := Summarize(samples, 4, nil)
	want := []float64{0.5 * 255, 255, 0, 0.5 * 255}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("bar %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestSummarizeReportsProgress(t *testing.T) {
	var reports []float64
	Summarize(make([]float64, 1000), 200, func(f float64) { reports = append(reports, f) })

	want := []float64{0, 0.25, 0.5, 0.75}
	if len(reports) != len(want) {
		t.Fatalf("reports = %v", reports)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Errorf("report %d = %f, want %f", i, reports[i], want[i])
		}
	}
}

func TestSummarizeFewSamples(t *testing.T) {
	got := Summarize([]float64{-1, 0.5}, 5, nil)
	if len(got) != 5 || got[0] != 255 || got[1] != 127.5 || got[4] != 0 {
		t.Errorf("Summarize few = %v", got)
	}
	if Summarize(nil, 0, nil) != nil {
		t.Error("n=0 should give nil")
	}
}

func TestPlaceholderRange(t *testing.T) {
	got := Placeholder(250, rand.New(rand.NewSource(1)))
	if len(got) != 250 {
		t.Fatalf("len = %d", len(got))
	}
	for i, v := range got {
		if v < 10 || v >= 50 {
			t.Fatalf("placeholder %d = %f out of [10,50)", i, v)
		}
	}
}

func TestAnalyserSinePeak(t *testing.T) {
	a := NewAnalyser(1024)
	const bin = 64

	frames := make([][2]float64, 1024)
	for i := range frames {
		v := 0.8 * math.Sin(2*math.Pi*bin*float64(i)/1024)
		frames[i] = [2]float64{v, v}
	}
	a.Write(frames)

	dst := make([]byte, a.FrequencyBinCount())
	if n := a.ByteFrequencyData(dst); n != 512 {
		t.Fatalf("bins = %d, want 512", n)
	}

	peak := 0
	for k := range dst {
		if dst[k] > dst[peak] {
			peak = k
		}
	}
	if peak != bin {
		t.Errorf("peak bin = %d, want %d", peak, bin)
	}
	if dst[peak] == 0 {
		t.Error("peak should be non-zero")
	}
}

func TestAnalyserSilenceAndReset(t *testing.T) {
	a := NewAnalyser(1024)
	dst := make([]byte, a.FrequencyBinCount())
	a.ByteFrequencyData(dst)
	for k, v := range dst {
		if v != 0 {
			t.Fatalf("silence bin %d = %d", k, v)
		}
	}

	a.Write([][2]float64{{1, 1}, {-1, -1}})
	a.Reset()
	a.ByteFrequencyData(dst)
	for k, v := range dst {
		if v != 0 {
			t.Fatalf("after reset bin %d = %d", k, v)
		}
	}
}

type fakeStreamer struct{ n int }

func (f *fakeStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{0.5, 0.5}
	}
	f.n += len(samples)
	return len(samples), true
}

func (f *fakeStreamer) Err() error { return nil }

func TestAnalyserWrapFeedsRing(t *testing.T) {
	a := NewAnalyser(8)
	s := a.Wrap(&fakeStreamer{})
	buf := make([][2]float64, 8)
	if n, ok := s.Stream(buf); n != 8 || !ok {
		t.Fatalf("Stream = %d %v", n, ok)
	}
	for i, v := range a.ring {
		if v != 0.5 {
			t.Fatalf("ring[%d] = %f", i, v)
		}
	}
}

func writeTestWAV(t *testing.T, frames, rate int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, rate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		Data:           make([]int, frames*2),
		SourceBitDepth: 16,
	}
	for i := 0; i < frames; i++ {
		v := int(16384 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
		buf.Data[i*2] = v
		buf.Data[i*2+1] = v
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return path
}

func TestDecodeMonoWAV(t *testing.T) {
	path := writeTestWAV(t, 8000, 8000)
	data, err := Fetch(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	pcm, err := DecodeMono(data, path)
	if err != nil {
		t.Fatalf("DecodeMono: %v", err)
	}
	if len(pcm.Samples) != 8000 || pcm.SampleRate != 8000 {
		t.Fatalf("got %d samples @ %d", len(pcm.Samples), pcm.SampleRate)
	}
	if d := pcm.Duration(); math.Abs(d-1) > 1e-9 {
		t.Errorf("duration = %f", d)
	}
	for i, v := range pcm.Samples {
		if v < -0.51 || v > 0.51 {
			t.Fatalf("sample %d = %f out of expected amplitude", i, v)
		}
	}
}

func TestDecodeMonoRejectsGarbage(t *testing.T) {
	_, err := DecodeMono([]byte("bukan audio"), "x.ogg")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("RIFF"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL+"/ok.wav")
	if err != nil || string(data) != "RIFF" {
		t.Fatalf("Fetch = %q, %v", data, err)
	}
	if _, err := Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected http error")
	}
	if _, err := Fetch(context.Background(), ""); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestOpenElementWAV(t *testing.T) {
	path := writeTestWAV(t, 4410, 44100)
	data, _ := os.ReadFile(path)

	el, err := OpenElement(data)
	if err != nil {
		t.Fatalf("OpenElement: %v", err)
	}
	defer el.Close()

	if d := el.Duration(); math.Abs(d-0.1) > 1e-6 {
		t.Errorf("duration = %f, want 0.1", d)
	}
	el.SetCurrentTime(0.05)
	if ct := el.CurrentTime(); math.Abs(ct-0.05) > 1e-3 {
		t.Errorf("current time = %f, want 0.05", ct)
	}
	if err := el.Play(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Play before Connect = %v", err)
	}
}
