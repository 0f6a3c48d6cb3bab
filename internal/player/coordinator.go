package player

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"playbar/internal/codec"
	"playbar/internal/log"
	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

type Options struct {
	Geometry codec.Geometry // BarCount 0 berarti default
	Fetch    Fetcher
	Open     Opener
	Decode   Decoder
	NewGraph func() *audioengine.Graph
	Log      *log.Logger
	Seed     int64

	LoadingHold   time.Duration
	FrameInterval time.Duration
}

// Coordinator registry player + satu graph audio bersama.
// Menjamin paling banyak satu player dalam state Playing.
type Coordinator struct {
	geo       codec.Geometry
	textColor color.NRGBA
	log       *log.Logger

	fetch    Fetcher
	open     Opener
	decode   Decoder
	newGraph func() *audioengine.Graph

	loadingHold   time.Duration
	frameInterval time.Duration

	graphOnce  sync.Once
	graph      *audioengine.Graph
	graphReady atomic.Bool

	randMu sync.Mutex
	rng    *rand.Rand

	mu      sync.Mutex
	players map[string]*Player
	order   []*Player
	current string
}

func NewCoordinator(opts Options) *Coordinator {
	c := &Coordinator{
		geo:           opts.Geometry,
		textColor:     codec.MustColor(spec.TextColor),
		log:           opts.Log,
		fetch:         opts.Fetch,
		open:          opts.Open,
		decode:        opts.Decode,
		newGraph:      opts.NewGraph,
		loadingHold:   opts.LoadingHold,
		frameInterval: opts.FrameInterval,
		players:       make(map[string]*Player),
	}
	if c.geo.BarCount <= 0 {
		c.geo = codec.DefaultGeometry()
	}
	if c.log == nil {
		c.log = log.Discard()
	}
	if c.fetch == nil {
		c.fetch = audioengine.Fetch
	}
	if c.open == nil {
		c.open = openElement
	}
	if c.decode == nil {
		c.decode = audioengine.DecodeMono
	}
	if c.newGraph == nil {
		c.newGraph = func() *audioengine.Graph {
			return audioengine.NewGraph(spec.SampleRate, spec.FFTSize)
		}
	}
	if c.loadingHold <= 0 {
		c.loadingHold = spec.LoadingHold
	}
	if c.frameInterval <= 0 {
		c.frameInterval = spec.FrameInterval
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(seed))
	return c
}

func (c *Coordinator) Geometry() codec.Geometry { return c.geo }

// Add mendaftarkan player baru. Elemen yang kurang -> ErrMissingElement.
func (c *Coordinator) Add(id, title string, els Elements) (*Player, error) {
	p, err := newPlayer(c, id, title, els)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.players[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	c.players[id] = p
	c.order = append(c.order, p)
	return p, nil
}

func (c *Coordinator) Player(id string) (*Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return p, nil
}

// Players urut sesuai pendaftaran.
func (c *Coordinator) Players() []*Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Player(nil), c.order...)
}

// Current id player yang terakhir diberi hak main.
func (c *Coordinator) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Graph dibuat malas pada interaksi pertama.
func (c *Coordinator) Graph() *audioengine.Graph {
	c.graphOnce.Do(func() {
		c.graph = c.newGraph()
		c.graphReady.Store(true)
		c.log.Debugf("graph audio dibuat")
	})
	return c.graph
}

// GraphCreated true setelah Graph pertama kali dipakai.
func (c *Coordinator) GraphCreated() bool { return c.graphReady.Load() }

// PauseAllExcept mem-pause semua player selain id lalu mencatat id sebagai current.
func (c *Coordinator) PauseAllExcept(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseAllExceptLocked(id)
}

func (c *Coordinator) pauseAllExceptLocked(id string) {
	for _, p := range c.order {
		if p.id != id {
			p.pauseIfPlaying()
		}
	}
	c.current = id
}

// play satu-satunya jalan masuk ke state Playing.
func (c *Coordinator) play(p *Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.Graph()
	c.pauseAllExceptLocked(p.id)
	return p.start(g)
}

// Resize menyesuaikan semua canvas; player yang diam digambar ulang.
func (c *Coordinator) Resize(w, h int) {
	for _, p := range c.Players() {
		p.resize(w, h)
	}
}

func (c *Coordinator) Close() error {
	var errs []error
	for _, p := range c.Players() {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("player %s: %w", p.id, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Coordinator) placeholder(n int) []float64 {
	c.randMu.Lock()
	defer c.randMu.Unlock()
	return audioengine.Placeholder(n, c.rng)
}
