package container

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"playbar/internal/codec"
)

const samplePage = `{
  "title": "demo",
  "players": [
    {"title": "A", "canvas": {"width": 800, "height": 120}, "play_button": {}, "time": {}},
    {"id": "solo", "title": "B", "audio": "b.wav", "canvas": {}, "play_button": {}, "time": {}},
    {"title": "C", "play_button": {}, "time": {}}
  ],
  "sources": {"player1": "a.mp3"},
  "links": {"site": "https://example.com"},
  "visual": {"bar_count": 200, "sensitivity": 10, "bar_color": "#00ff00"}
}`

func TestParseResolvesIDsAndSources(t *testing.T) {
	p, err := Parse([]byte(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		idx   int
		id    string
		audio string
	}{
		{0, "player1", "a.mp3"},
		{1, "solo", "b.wav"},
		{2, "player3", ""},
	}
	for _, tt := range tests {
		c := p.Players[tt.idx]
		if c.ID != tt.id || c.Audio != tt.audio {
			t.Errorf("player %d = %q/%q, want %q/%q", tt.idx, c.ID, c.Audio, tt.id, tt.audio)
		}
	}
	if c := p.Players[1].Canvas; c.Width != DefaultCanvasWidth || c.Height != DefaultCanvasHeight {
		t.Errorf("canvas defaults = %+v", c)
	}
	if p.Players[2].Canvas != nil {
		t.Error("missing canvas must stay nil")
	}
}

func TestGeometryOverride(t *testing.T) {
	p, err := Parse([]byte(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	def := codec.DefaultGeometry()
	g, err := p.Geometry(def)
	if err != nil {
		t.Fatal(err)
	}
	if g.BarCount != 200 || g.Sensitivity != 10 || g.MinBarHeight != def.MinBarHeight {
		t.Errorf("geometry = %+v", g)
	}
	if g.BarColor.G != 255 || g.BarColor.R != 0 {
		t.Errorf("bar color = %v", g.BarColor)
	}

	p.Visual.ProgressColor = "salah"
	if _, err := p.Geometry(def); err == nil {
		t.Error("expected color error")
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{`{`, `{"players": []}`} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalidPage) {
			t.Errorf("Parse(%q) err = %v", in, err)
		}
	}
}

func TestLoadAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.json")
	if err := os.WriteFile(path, []byte(samplePage), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLAYBAR_PAGE", path)
	p, err := Load(PathFromEnv("lain.json"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "demo" || p.Links["site"] == "" {
		t.Errorf("page = %+v", p)
	}
}

func TestDefaultPage(t *testing.T) {
	p := Default()
	if len(p.Players) != 3 {
		t.Fatalf("players = %d", len(p.Players))
	}
	for i, c := range p.Players {
		if c.Audio == "" || c.Canvas.Width != DefaultCanvasWidth {
			t.Errorf("player %d = %+v", i, c)
		}
	}
}
