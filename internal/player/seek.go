package player

import (
	"fmt"
	"math"

	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

// SeekFraction memetakan klik (koordinat client) ke fraksi durasi [0, 1].
func SeekFraction(x, startX, width, scale float64) float64 {
	usable := width - startX
	if usable <= 0 {
		return 0
	}
	return audioengine.Clamp((x-startX)*scale/usable, 0, 1)
}

// FormatTime M:SS, contoh 125 -> "2:05".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	mins := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", mins, secs)
}

type Layout int

const (
	LayoutStandard Layout = iota
	LayoutCompact
)

func (l Layout) String() string {
	if l == LayoutCompact {
		return "compact"
	}
	return "standard"
}

func layoutFor(containerWidth int) Layout {
	if containerWidth < spec.CompactBreakpoint {
		return LayoutCompact
	}
	return LayoutStandard
}

// WaveformStartX = lebar art + lebar tombol + margin + padding canvas.
func (p *Player) WaveformStartX() float64 {
	art := p.els.ArtWidth
	if art <= 0 {
		art = spec.DefaultArtWidth
	}
	btn := p.els.ButtonWidth
	if btn <= 0 {
		btn = spec.DefaultButtonWidth
	}
	return art + btn + spec.ChromeMargin + p.els.PaddingLeft
}

// HandleClick klik pada canvas di koordinat x lokal.
// Area chrome hanya memulai playback (jika sedang pause), posisi tetap.
// Area waveform: seek lalu play jika belum main.
func (p *Player) HandleClick(x float64) error {
	p.mu.Lock()
	if p.src == "" {
		p.mu.Unlock()
		return ErrNoSource
	}
	playing := p.state == Playing
	el := p.el
	p.mu.Unlock()

	startX := p.WaveformStartX()
	if x < startX {
		p.log.Debugf("[%s] klik di area chrome", p.id)
		if !playing {
			return p.TogglePlayback()
		}
		return nil
	}

	w, _ := p.els.Surface.Size()
	frac := SeekFraction(x, startX, float64(w), p.els.Surface.ScaleFactor())

	if el == nil {
		return nil
	}
	d := el.Duration()
	if d <= 0 || math.IsNaN(d) {
		return nil
	}
	el.SetCurrentTime(frac * d)

	if !playing {
		return p.TogglePlayback()
	}
	p.mu.Lock()
	p.updateTimesLocked()
	p.mu.Unlock()
	return nil
}
