package container

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"playbar/internal/codec"
)

// Ukuran tampil canvas jika container tidak menyebutkan.
const (
	DefaultCanvasWidth  = 1060
	DefaultCanvasHeight = 100
)

var ErrInvalidPage = errors.New("page tidak valid")

// Canvas permukaan gambar milik satu container.
type Canvas struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	PaddingLeft float64 `json:"padding_left"`
}

type AlbumArt struct {
	Src   string  `json:"src"`
	Width float64 `json:"width"`
}

// PlayButton membawa ikon play dan pause.
type PlayButton struct {
	Width float64 `json:"width"`
}

// TimeDisplay elemen teks waktu berjalan dan total.
type TimeDisplay struct{}

// Container satu player di halaman. Canvas, PlayButton dan Time wajib ada.
type Container struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Audio      string       `json:"audio"`
	Canvas     *Canvas      `json:"canvas"`
	AlbumArt   *AlbumArt    `json:"album_art"`
	PlayButton *PlayButton  `json:"play_button"`
	Time       *TimeDisplay `json:"time"`
}

// Visual override parameter bar. Field kosong memakai default.
type Visual struct {
	BarCount      int     `json:"bar_count"`
	BarSpacing    float64 `json:"bar_spacing"`
	Sensitivity   float64 `json:"sensitivity"`
	MinBarHeight  float64 `json:"min_bar_height"`
	Easing        float64 `json:"easing"`
	BarColor      string  `json:"bar_color"`
	ProgressColor string  `json:"progress_color"`
}

// Page deskripsi halaman: container, tabel sumber audio dan link.
type Page struct {
	Title    string            `json:"title"`
	Embedded bool              `json:"embedded"`
	Players  []Container       `json:"players"`
	Sources  map[string]string `json:"sources"`
	Links    map[string]string `json:"links"`
	Visual   *Visual           `json:"visual,omitempty"`
}

// Load membaca page JSON dari disk.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	if len(p.Players) == 0 {
		return nil, fmt.Errorf("%w: tidak ada player", ErrInvalidPage)
	}
	p.resolve()
	return &p, nil
}

// PathFromEnv: PLAYBAR_PAGE menimpa def.
func PathFromEnv(def string) string {
	if v := os.Getenv("PLAYBAR_PAGE"); v != "" {
		return v
	}
	return def
}

// resolve mengisi id kosong (player1, player2, ...) dan sumber audio
// dari tabel sources.
func (p *Page) resolve() {
	for i := range p.Players {
		c := &p.Players[i]
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			c.ID = fmt.Sprintf("player%d", i+1)
		}
		if c.Audio == "" {
			c.Audio = p.SourceFor(c.ID)
		}
		if c.Canvas != nil {
			if c.Canvas.Width <= 0 {
				c.Canvas.Width = DefaultCanvasWidth
			}
			if c.Canvas.Height <= 0 {
				c.Canvas.Height = DefaultCanvasHeight
			}
		}
	}
}

// SourceFor, string kosong jika id tidak ada di tabel.
func (p *Page) SourceFor(id string) string {
	return p.Sources[id]
}

// Geometry menerapkan override visual ke def.
func (p *Page) Geometry(def codec.Geometry) (codec.Geometry, error) {
	v := p.Visual
	if v == nil {
		return def, nil
	}
	g := def
	if v.BarCount > 0 {
		g.BarCount = v.BarCount
	}
	if v.BarSpacing > 0 {
		g.BarSpacing = v.BarSpacing
	}
	if v.Sensitivity > 0 {
		g.Sensitivity = v.Sensitivity
	}
	if v.MinBarHeight > 0 {
		g.MinBarHeight = v.MinBarHeight
	}
	if v.Easing > 0 {
		g.Easing = v.Easing
	}
	if v.BarColor != "" {
		c, err := codec.ParseColor(v.BarColor)
		if err != nil {
			return def, fmt.Errorf("bar_color: %w", err)
		}
		g.BarColor = c
	}
	if v.ProgressColor != "" {
		c, err := codec.ParseColor(v.ProgressColor)
		if err != nil {
			return def, fmt.Errorf("progress_color: %w", err)
		}
		g.ProgressColor = c
	}
	return g, nil
}

// Default halaman contoh dengan tiga player.
func Default() *Page {
	p := &Page{
		Title: "playbar",
		Sources: map[string]string{
			"player1": "https://dl.dropboxusercontent.com/scl/fi/vzk3mg3iaftu7mv8yf6z1/AF_BullFight_Mockup_Master.mp3?rlkey=4dmiwmjkkhv71daw3xbv6yigp&dl=0",
			"player2": "https://dl.dropboxusercontent.com/scl/fi/p7xq8za1310gilf6t6fml/Outlandish_1m03_Website.wav?rlkey=eo37maygadlcpsc06mv9vcmjp&dl=0",
			"player3": "https://dl.dropboxusercontent.com/scl/fi/4gscl4bx3nguexcm575sc/TheKiss_WithMIDI_V2.wav?rlkey=ph0e9dvkk8r68bmq746ow710o&dl=0",
		},
		Links: map[string]string{},
	}
	for _, title := range []string{"Bull Fight", "Outlandish", "The Kiss"} {
		p.Players = append(p.Players, Container{
			Title:      title,
			Canvas:     &Canvas{},
			PlayButton: &PlayButton{},
			Time:       &TimeDisplay{},
		})
	}
	p.resolve()
	return p
}
