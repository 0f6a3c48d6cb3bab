// Package link kontrak dua sisi untuk membuka link eksternal: sisi anak
// mencoba navigasi langsung lalu mengirim pesan openLink ke parent jika
// diblokir, sisi parent mendengarkan dan melakukan navigasi.
package link

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"playbar/internal/log"
	"playbar/pkg/spec"
)

var (
	ErrBlocked    = errors.New("navigasi diblokir")
	ErrInvalidURL = errors.New("url tidak valid")
)

// Message pesan lintas frame.
type Message struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Navigator interface {
	Navigate(ctx context.Context, rawURL string) error
}

// Poster mengirim pesan ke konteks parent.
type Poster interface {
	Post(msg Message) error
}

func validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

// Opener sisi anak. parent nil berarti tidak sedang di-embed.
type Opener struct {
	nav    Navigator
	parent Poster
	delay  time.Duration
	log    *log.Logger
}

func NewOpener(nav Navigator, parent Poster, logger *log.Logger) *Opener {
	return &Opener{nav: nav, parent: parent, delay: spec.LinkFallback, log: logger}
}

// Open mencoba navigasi langsung. Jika gagal dan ada parent, setelah jeda
// singkat kirim {type:"openLink", url} ke parent.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	if err := validate(rawURL); err != nil {
		return err
	}
	navErr := o.nav.Navigate(ctx, rawURL)
	if navErr == nil {
		return nil
	}
	if o.parent == nil {
		return navErr
	}
	o.log.Debugf("navigasi langsung gagal (%v), fallback ke parent", navErr)

	t := time.NewTimer(o.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	if err := o.parent.Post(Message{Type: spec.OpenLinkMessage, URL: rawURL}); err != nil {
		o.log.Warnf("tidak bisa menghubungi parent: %v", err)
		return errors.Join(navErr, err)
	}
	return nil
}

// WriterPoster menulis pesan sebagai satu baris JSON.
type WriterPoster struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterPoster(w io.Writer) *WriterPoster { return &WriterPoster{w: w} }

func (p *WriterPoster) Post(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.w.Write(append(data, '\n'))
	return err
}

// Listener sisi parent.
type Listener struct {
	nav Navigator
	log *log.Logger
}

func NewListener(nav Navigator, logger *log.Logger) *Listener {
	return &Listener{nav: nav, log: logger}
}

// Handle hanya memproses pesan openLink dengan url terisi.
// ok false jika pesan diabaikan.
func (l *Listener) Handle(ctx context.Context, msg Message) (ok bool, err error) {
	if msg.Type != spec.OpenLinkMessage || msg.URL == "" {
		return false, nil
	}
	if err := validate(msg.URL); err != nil {
		return false, err
	}
	return true, l.nav.Navigate(ctx, msg.URL)
}

// Serve membaca pesan per baris dari r. Baris yang bukan JSON dilewati.
func (l *Listener) Serve(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			l.log.Debugf("pesan diabaikan: %v", err)
			continue
		}
		if _, err := l.Handle(ctx, msg); err != nil {
			l.log.Warnf("openLink %s: %v", msg.URL, err)
		}
	}
	return sc.Err()
}

// SystemNavigator membuka url dengan browser bawaan OS.
type SystemNavigator struct{}

func (SystemNavigator) Navigate(ctx context.Context, rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", rawURL)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrBlocked, err)
	}
	go cmd.Wait()
	return nil
}
