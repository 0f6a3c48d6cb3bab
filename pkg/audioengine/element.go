package audioengine

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var ErrNotConnected = errors.New("element belum tersambung ke graph")

// memFile membuat buffer memori bisa di-seek dan di-close (butuh decoder beep).
type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

// Element adalah handle playback satu resource audio di atas beep.
type Element struct {
	mu     sync.Mutex
	graph  *Graph
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl

	attached atomic.Bool
	onEnded  atomic.Pointer[func()]
}

// OpenElement membuka stream playback dari data yang sudah di-fetch.
func OpenElement(data []byte) (*Element, error) {
	src := memFile{bytes.NewReader(data)}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	if isWAV(data) {
		s, format, err = wav.Decode(src)
	} else {
		s, format, err = mp3.Decode(src)
	}
	if err != nil {
		return nil, err
	}
	return &Element{stream: s, format: format}, nil
}

// Connect menyambungkan element ke graph bersama (sekali per graph).
func (e *Element) Connect(g *Graph) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == g {
		return nil
	}
	if err := g.Resume(); err != nil {
		return err
	}
	e.graph = g
	return nil
}

func (e *Element) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return ErrNotConnected
	}

	// Setelah track selesai, Seq sudah dilepas speaker: pasang ulang
	if !e.attached.Load() {
		e.ctrl = &beep.Ctrl{
			Streamer: beep.Seq(e.graph.Connect(e.stream, e.format), beep.Callback(e.ended)),
			Paused:   true,
		}
		e.attached.Store(true)
		e.graph.Play(e.ctrl)
	}

	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (e *Element) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil || e.graph == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

func (e *Element) CurrentTime() float64 {
	speaker.Lock()
	pos := e.stream.Position()
	speaker.Unlock()
	return e.format.SampleRate.D(pos).Seconds()
}

func (e *Element) SetCurrentTime(sec float64) {
	n := e.format.SampleRate.N(time.Duration(sec * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if l := e.stream.Len(); n > l {
		n = l
	}
	speaker.Lock()
	_ = e.stream.Seek(n)
	speaker.Unlock()
}

func (e *Element) Duration() float64 {
	return e.format.SampleRate.D(e.stream.Len()).Seconds()
}

// OnEnded dipanggil di goroutine terpisah saat stream habis.
func (e *Element) OnEnded(fn func()) {
	e.onEnded.Store(&fn)
}

func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	speaker.Lock()
	if e.ctrl != nil {
		e.ctrl.Paused = true
		e.ctrl.Streamer = nil
	}
	speaker.Unlock()
	return e.stream.Close()
}

// ended jalan di goroutine speaker dengan lock speaker terpegang:
// jangan ambil e.mu di sini.
func (e *Element) ended() {
	e.attached.Store(false)
	if fn := e.onEnded.Load(); fn != nil && *fn != nil {
		go (*fn)()
	}
}
