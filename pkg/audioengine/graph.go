package audioengine

import (
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"playbar/pkg/spec"
)

// Graph adalah konteks audio bersama: satu speaker + satu analyser.
// Speaker baru diinisialisasi pada Resume pertama (kebijakan autoplay).
type Graph struct {
	sampleRate beep.SampleRate
	analyser   *Analyser

	once sync.Once
	err  error
}

func NewGraph(sampleRate, fftSize int) *Graph {
	if sampleRate <= 0 {
		sampleRate = spec.SampleRate
	}
	return &Graph{
		sampleRate: beep.SampleRate(sampleRate),
		analyser:   NewAnalyser(fftSize),
	}
}

func (g *Graph) SampleRate() beep.SampleRate { return g.sampleRate }

func (g *Graph) Analyser() *Analyser { return g.analyser }

// Resume menginisialisasi speaker sekali saja.
func (g *Graph) Resume() error {
	g.once.Do(func() {
		g.err = speaker.Init(g.sampleRate, g.sampleRate.N(spec.SpeakerBuffer))
	})
	return g.err
}

// Connect menyambungkan source ke analyser, resample jika rate berbeda.
func (g *Graph) Connect(s beep.Streamer, format beep.Format) beep.Streamer {
	if format.SampleRate != g.sampleRate {
		s = beep.Resample(spec.ResampleQuality, format.SampleRate, g.sampleRate, s)
	}
	return g.analyser.Wrap(s)
}

func (g *Graph) Play(s beep.Streamer) { speaker.Play(s) }
