package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"playbar/internal/codec"
	"playbar/pkg/audioengine"
)

var (
	ErrMissingElement = errors.New("elemen player tidak lengkap")
	ErrResourceLoad   = errors.New("gagal memuat audio")
	ErrNoSource       = errors.New("player belum punya sumber audio")
	ErrDuplicateID    = errors.New("id player sudah terdaftar")
	ErrUnknownPlayer  = errors.New("player tidak ditemukan")
)

// Element handle playback satu resource audio.
type Element interface {
	Connect(g *audioengine.Graph) error
	Play() error
	Pause()
	CurrentTime() float64
	SetCurrentTime(sec float64)
	Duration() float64
	OnEnded(fn func())
	Close() error
}

type (
	Fetcher func(ctx context.Context, src string) ([]byte, error)
	Opener  func(data []byte) (Element, error)
	Decoder func(data []byte, name string) (audioengine.PCM, error)
)

func openElement(data []byte) (Element, error) {
	el, err := audioengine.OpenElement(data)
	if err != nil {
		return nil, err
	}
	return el, nil
}

type TextSink interface{ SetText(string) }

type Visibility interface{ SetVisible(bool) }

// Label elemen teks (tampilan waktu).
type Label struct {
	mu   sync.Mutex
	text string
}

func (l *Label) SetText(s string) {
	l.mu.Lock()
	l.text = s
	l.mu.Unlock()
}

func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// Icon elemen yang hanya bisa tampil atau sembunyi.
type Icon struct {
	mu      sync.Mutex
	visible bool
}

func (i *Icon) SetVisible(v bool) {
	i.mu.Lock()
	i.visible = v
	i.mu.Unlock()
}

func (i *Icon) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.visible
}

// Elements handle bertipe milik satu container, divalidasi sekali di NewPlayer.
// ArtWidth dan ButtonWidth 0 berarti elemennya tidak ada (pakai default).
type Elements struct {
	Surface     *codec.Surface
	CurrentTime TextSink
	TotalTime   TextSink
	PlayIcon    Visibility
	PauseIcon   Visibility

	AlbumArt    image.Image
	ArtWidth    float64
	ButtonWidth float64
	PaddingLeft float64
}

func (e Elements) validate() error {
	var missing []string
	if e.Surface == nil {
		missing = append(missing, "canvas")
	}
	if e.CurrentTime == nil {
		missing = append(missing, "current-time")
	}
	if e.TotalTime == nil {
		missing = append(missing, "total-time")
	}
	if e.PlayIcon == nil {
		missing = append(missing, "play-icon")
	}
	if e.PauseIcon == nil {
		missing = append(missing, "pause-icon")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingElement, strings.Join(missing, ", "))
	}
	return nil
}
