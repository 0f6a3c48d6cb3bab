// Package frame menjalankan callback per frame (pengganti requestAnimationFrame).
package frame

import (
	"context"
	"sync"
	"time"
)

// Loop menjalankan paling banyak satu rangkaian frame pada satu waktu.
// Start baru membatalkan rangkaian sebelumnya.
type Loop struct {
	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	gen      uint64
}

func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{interval: interval}
}

// Start memanggil fn segera lalu tiap interval sampai fn mengembalikan
// false, Stop dipanggil, atau Start dipanggil lagi. ctx yang diterima fn
// sudah dibatalkan begitu rangkaian ini tidak berlaku lagi.
func (l *Loop) Start(fn func(ctx context.Context) bool) {
	ctx, cancel := context.WithCancel(context.Background())

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	go l.run(ctx, cancel, gen, fn)
}

func (l *Loop) run(ctx context.Context, cancel context.CancelFunc, gen uint64, fn func(context.Context) bool) {
	defer func() {
		l.mu.Lock()
		if l.gen == gen {
			l.cancel = nil
		}
		l.mu.Unlock()
		cancel()
	}()

	t := time.NewTicker(l.interval)
	defer t.Stop()

	for {
		if ctx.Err() != nil || !fn(ctx) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Stop membatalkan rangkaian aktif. Tidak menunggu frame yang sedang jalan.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}
