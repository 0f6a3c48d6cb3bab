package player

import (
	"context"
	"fmt"
	"image"
	"time"

	"playbar/internal/codec"
	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

// loadingState animasi "Loading Audio": opasitas berdenyut, progress merayap.
type loadingState struct {
	active   bool
	progress float64
	opacity  float64
	dir      float64
}

func (l *loadingState) reset() {
	*l = loadingState{active: true, opacity: spec.OpacityMin, dir: 1}
}

func (l *loadingState) step() {
	l.opacity += spec.OpacityStep * l.dir
	if l.opacity >= spec.OpacityMax {
		l.opacity = spec.OpacityMax
		l.dir = -1
	} else if l.opacity <= spec.OpacityMin {
		l.opacity = spec.OpacityMin
		l.dir = 1
	}
	if l.progress < spec.ProgressCeil {
		l.progress += spec.ProgressCreep
	}
}

// Progress nilai progress loading saat ini (0..1).
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading.progress
}

// SetSource memasang sumber audio baru (URL atau path lokal) dan memulai
// fetch + analisa di background. Sumber kosong membuat player Idle.
func (p *Player) SetSource(src string) {
	p.mu.Lock()
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.gen++
	gen := p.gen
	p.anim.Stop()
	if err := p.releaseLocked(); err != nil {
		p.log.Warnf("[%s] close element: %v", p.id, err)
	}

	p.src = src
	p.static = nil
	p.errText = ""
	p.pendingPlay = false
	for i := range p.prev {
		p.prev[i] = 0
	}
	p.setIconsLocked(false)

	if src == "" {
		p.state = Idle
		p.loading.active = false
		p.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancelLoad = cancel
	p.state = Loading
	p.startLoadingLocked()
	p.mu.Unlock()

	p.log.Infof("[%s] memuat %s", p.id, src)
	go p.load(ctx, gen, src)
}

func (p *Player) startLoadingLocked() {
	p.loading.reset()
	p.els.Surface.Draw(codec.Clear)
	p.anim.Start(p.loadingTick)
}

func (p *Player) loadingTick(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ctx.Err() != nil || !p.loading.active {
		return false
	}
	p.loading.step()

	col := codec.WithAlpha(p.coord.textColor, p.loading.opacity)
	p.els.Surface.Draw(func(img *image.RGBA) {
		codec.Clear(img)
		p.drawChrome(img)
		w := float64(img.Bounds().Dx())
		start := p.WaveformStartX()
		codec.DrawCenteredText(img, spec.LoadingText, start+(w-start)/2, float64(img.Bounds().Dy())/2, col)
	})
	return true
}

func (p *Player) setProgress(gen uint64, v float64) {
	p.mu.Lock()
	if p.gen == gen {
		p.loading.progress = v
	}
	p.mu.Unlock()
}

// load pipeline: fetch -> buka element -> decode -> summarize -> hold.
func (p *Player) load(ctx context.Context, gen uint64, src string) {
	p.setProgress(gen, 0.1)
	data, err := p.coord.fetch(ctx, src)
	if err != nil {
		p.fail(gen, spec.ErrLoadingText, fmt.Errorf("%w: fetch %s: %v", ErrResourceLoad, src, err))
		return
	}
	p.setProgress(gen, 0.4)

	el, err := p.coord.open(data)
	if err != nil {
		p.fail(gen, spec.ErrLoadingText, fmt.Errorf("%w: open %s: %v", ErrResourceLoad, src, err))
		return
	}
	if !p.attach(gen, el) {
		el.Close()
		return
	}

	pcm, err := p.coord.decode(data, src)
	if err != nil {
		p.fail(gen, spec.ErrAnalyzingText, fmt.Errorf("%w: decode %s: %v", ErrResourceLoad, src, err))
		return
	}
	p.setProgress(gen, 0.6)

	p.setProgress(gen, 0.8)
	static := audioengine.Summarize(pcm.Samples, p.geo.BarCount, func(f float64) {
		p.setProgress(gen, 0.8+0.2*f)
	})
	p.setProgress(gen, 1.0)

	select {
	case <-ctx.Done():
		return
	case <-time.After(p.coord.loadingHold):
	}
	p.finish(gen, static, "")
}

// attach memasang element begitu resource terbuka; durasi langsung tampil.
func (p *Player) attach(gen uint64, el Element) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return false
	}
	p.el = el
	el.OnEnded(func() { p.handleEnded(el) })
	p.updateTimesLocked()
	return true
}

// fail pemulihan lokal: waveform placeholder + pesan di canvas.
func (p *Player) fail(gen uint64, text string, err error) {
	p.log.Warnf("[%s] %v", p.id, err)
	p.finish(gen, p.coord.placeholder(p.geo.BarCount), text)
}

func (p *Player) finish(gen uint64, static []float64, errText string) {
	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return
	}
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.loading.active = false
	p.anim.Stop()

	p.static = static
	p.errText = errText
	p.state = ReadyPaused
	p.drawStaticLocked()

	pending := p.pendingPlay && p.el != nil
	p.pendingPlay = false
	p.mu.Unlock()

	if pending {
		if err := p.coord.play(p); err != nil {
			p.log.Errorf("[%s] play setelah analisa: %v", p.id, err)
		}
	}
}
