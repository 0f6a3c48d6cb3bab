package player

import (
	"errors"
	"fmt"
	"image"
	"os"

	"playbar/internal/codec"
	"playbar/internal/container"
	"playbar/pkg/audioengine"
	"playbar/pkg/spec"
)

// FromPage membuat satu player per container lalu mulai memuat audionya.
// Container yang elemennya tidak lengkap dilewati (dicatat di log).
func FromPage(pg *container.Page, opts Options) (*Coordinator, error) {
	if opts.Geometry.BarCount <= 0 {
		g, err := pg.Geometry(codec.DefaultGeometry())
		if err != nil {
			return nil, fmt.Errorf("visual: %w", err)
		}
		opts.Geometry = g
	}
	c := NewCoordinator(opts)

	type pending struct {
		p   *Player
		src string
	}
	var added []pending
	for _, ct := range pg.Players {
		p, err := c.Add(ct.ID, ct.Title, c.elementsFor(ct))
		if err != nil {
			if errors.Is(err, ErrMissingElement) {
				c.log.Warnf("container %s dilewati: %v", ct.ID, err)
				continue
			}
			return nil, err
		}
		added = append(added, pending{p, ct.Audio})
	}

	for _, a := range added {
		if a.src == "" {
			c.log.Infof("[%s] tanpa sumber audio", a.p.id)
			continue
		}
		a.p.SetSource(a.src)
	}
	return c, nil
}

func (c *Coordinator) elementsFor(ct container.Container) Elements {
	var els Elements
	if ct.Canvas != nil {
		els.Surface = codec.NewSurface(ct.Canvas.Width, ct.Canvas.Height, spec.CanvasInset)
		els.PaddingLeft = ct.Canvas.PaddingLeft
	}
	if ct.Time != nil {
		els.CurrentTime = &Label{}
		els.TotalTime = &Label{}
	}
	if ct.PlayButton != nil {
		els.PlayIcon = &Icon{}
		els.PauseIcon = &Icon{}
		els.ButtonWidth = ct.PlayButton.Width
	}
	if ct.AlbumArt != nil {
		els.ArtWidth = ct.AlbumArt.Width
		art, err := loadArtwork(ct.AlbumArt.Src, ct.AlbumArt.Width)
		if err != nil {
			c.log.Warnf("[%s] album art: %v", ct.ID, err)
		}
		els.AlbumArt = art
	}
	return els
}

// loadArtwork hanya membaca file lokal: fetch jaringan khusus audio.
func loadArtwork(src string, width float64) (image.Image, error) {
	if src == "" || audioengine.IsRemote(src) {
		return nil, nil
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size := int(width)
	if size <= 0 {
		size = spec.DefaultArtWidth
	}
	art, err := codec.ProcessArtwork(f, size)
	if err != nil {
		return nil, err
	}
	return art, nil
}
