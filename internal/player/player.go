package player

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"playbar/internal/codec"
	"playbar/internal/frame"
	"playbar/internal/log"
	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

type State int

const (
	Idle State = iota
	Loading
	ReadyPaused
	Playing
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Loading:
		return "LOADING"
	case ReadyPaused:
		return "PAUSED"
	case Playing:
		return "PLAYING"
	case Ended:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// Player satu instance playbar. Semua field mutable dijaga mu.
// Urutan lock: Coordinator.mu lalu Player.mu, tidak pernah sebaliknya.
type Player struct {
	id    string
	title string
	coord *Coordinator
	els   Elements
	geo   codec.Geometry
	log   *log.Logger
	anim  *frame.Loop

	mu          sync.Mutex
	state       State
	src         string
	el          Element
	graph       *audioengine.Graph
	static      []float64
	prev        []float64
	spectrum    []byte
	loading     loadingState
	errText     string
	pendingPlay bool
	cancelLoad  context.CancelFunc
	gen         uint64
}

func newPlayer(c *Coordinator, id, title string, els Elements) (*Player, error) {
	if err := els.validate(); err != nil {
		return nil, fmt.Errorf("player %s: %w", id, err)
	}
	p := &Player{
		id:    id,
		title: title,
		coord: c,
		els:   els,
		geo:   c.geo,
		log:   c.log,
		anim:  frame.NewLoop(c.frameInterval),
		prev:  make([]float64, c.geo.BarCount),
	}
	p.setIconsLocked(false)
	els.Surface.Resize()
	return p, nil
}

func (p *Player) ID() string { return p.id }

func (p *Player) Title() string { return p.title }

func (p *Player) Surface() *codec.Surface { return p.els.Surface }

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) IsPlaying() bool { return p.State() == Playing }

func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src
}

// Static salinan waveform statis (nil jika belum dianalisa).
func (p *Player) Static() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.static == nil {
		return nil
	}
	return append([]float64(nil), p.static...)
}

func (p *Player) ErrorText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errText
}

// Position waktu berjalan dan durasi (detik). Durasi NaN jika belum ada audio.
func (p *Player) Position() (current, duration float64) {
	p.mu.Lock()
	el := p.el
	p.mu.Unlock()
	if el == nil {
		return 0, math.NaN()
	}
	return el.CurrentTime(), el.Duration()
}

func (p *Player) Layout() Layout { return layoutFor(p.els.Surface.ClientWidth()) }

// TogglePlayback play jika sedang diam, pause jika sedang main.
func (p *Player) TogglePlayback() error {
	p.mu.Lock()
	st, src := p.state, p.src
	p.mu.Unlock()

	if src == "" {
		return ErrNoSource
	}
	if st == Playing {
		p.Pause()
		return nil
	}
	return p.coord.play(p)
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingPlay = false
	if p.state == Playing {
		p.pauseLocked()
	}
}

// Redraw menggambar ulang waveform statis jika sedang tidak main.
func (p *Player) Redraw() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing && p.state != Loading {
		p.drawStaticLocked()
	}
}

// Close menghentikan semua aktivitas player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.gen++
	p.anim.Stop()
	p.loading.active = false
	p.state = Idle
	return p.releaseLocked()
}

// start dipanggil Coordinator.play dengan lock coordinator terpegang.
func (p *Player) start(g *audioengine.Graph) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.state == Playing:
		return nil
	case p.state == Loading:
		// Lanjut main begitu analisa selesai
		p.pendingPlay = true
		return nil
	case p.el == nil:
		return ErrNoSource
	}

	if err := p.el.Connect(g); err != nil {
		return fmt.Errorf("player %s: connect: %w", p.id, err)
	}
	if err := p.el.Play(); err != nil {
		return fmt.Errorf("player %s: play: %w", p.id, err)
	}

	if p.graph != g || p.spectrum == nil {
		p.graph = g
		p.spectrum = make([]byte, g.Analyser().FrequencyBinCount())
	}
	g.Analyser().Reset()

	p.state = Playing
	p.setIconsLocked(true)
	p.anim.Start(p.liveTick)
	p.log.Infof("[%s] play", p.id)
	return nil
}

// pauseIfPlaying dipanggil coordinator saat player lain mulai main.
func (p *Player) pauseIfPlaying() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingPlay = false
	if p.state == Playing {
		p.pauseLocked()
	}
}

func (p *Player) pauseLocked() {
	p.el.Pause()
	p.anim.Stop()
	p.state = ReadyPaused
	p.setIconsLocked(false)
	p.drawStaticLocked()
	p.log.Infof("[%s] pause", p.id)
}

func (p *Player) handleEnded(el Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.el != el || p.state != Playing {
		return
	}
	p.anim.Stop()
	el.SetCurrentTime(0)
	p.state = Ended
	p.setIconsLocked(false)
	p.drawStaticLocked()
	p.log.Infof("[%s] selesai", p.id)
}

func (p *Player) resize(w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h <= 0 {
		_, h = p.els.Surface.Size()
	}
	p.els.Surface.SetClientSize(w, h)
	p.els.Surface.Resize()
	if p.state != Playing && p.state != Loading {
		p.drawStaticLocked()
	}
}

func (p *Player) releaseLocked() error {
	if p.el == nil {
		return nil
	}
	p.el.Pause()
	err := p.el.Close()
	p.el = nil
	return err
}

func (p *Player) setIconsLocked(playing bool) {
	p.els.PlayIcon.SetVisible(!playing)
	p.els.PauseIcon.SetVisible(playing)
}

func (p *Player) updateTimesLocked() {
	if p.el == nil {
		return
	}
	d := p.el.Duration()
	if math.IsNaN(d) {
		return
	}
	p.els.CurrentTime.SetText(FormatTime(p.el.CurrentTime()))
	p.els.TotalTime.SetText(FormatTime(d))
}

func (p *Player) frameFor(img *image.RGBA) codec.Frame {
	b := img.Bounds()
	f := codec.Frame{
		Width:    float64(b.Dx()),
		Height:   float64(b.Dy()),
		StartX:   p.WaveformStartX(),
		Duration: math.NaN(),
	}
	if p.el != nil {
		f.CurrentTime = p.el.CurrentTime()
		f.Duration = p.el.Duration()
	}
	return f
}

func (p *Player) drawChrome(img *image.RGBA) {
	art := p.els.ArtWidth
	if art <= 0 {
		art = spec.DefaultArtWidth
	}
	codec.DrawArtwork(img, p.els.AlbumArt, int(art))
}

func (p *Player) drawStaticLocked() {
	if p.static == nil {
		return
	}
	p.els.Surface.Draw(func(img *image.RGBA) {
		codec.Clear(img)
		p.drawChrome(img)
		f := p.frameFor(img)
		codec.Paint(img, p.geo.StaticBars(p.static, f), p.geo, f.Height)
		if p.errText != "" {
			codec.DrawCenteredText(img, p.errText, f.Width/2, f.Height/2, p.coord.textColor)
		}
	})
	p.updateTimesLocked()
}

// liveTick satu frame visualisasi live. false menghentikan loop.
func (p *Player) liveTick(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ctx.Err() != nil || p.state != Playing || p.graph == nil {
		return false
	}

	n := p.graph.Analyser().ByteFrequencyData(p.spectrum)
	p.els.Surface.Draw(func(img *image.RGBA) {
		codec.Clear(img)
		p.drawChrome(img)
		f := p.frameFor(img)
		codec.Paint(img, p.geo.LiveBars(p.spectrum[:n], p.prev, f), p.geo, f.Height)
	})
	p.updateTimesLocked()
	return true
}
