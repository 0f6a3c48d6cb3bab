package codec

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor menerima format warna CSS: #rgb, #rrggbb, rgb(r,g,b), rgba(r,g,b,a).
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))

	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("warna hex tidak valid %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil

	case strings.HasPrefix(s, "rgba("):
		var r, g, b int
		var a float64
		if _, err := fmt.Sscanf(s, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("warna rgba tidak valid %q: %w", s, err)
		}
		return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: uint8(math.Round(unit(a) * 255))}, nil

	case strings.HasPrefix(s, "rgb("):
		var r, g, b int
		if _, err := fmt.Sscanf(s, "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("warna rgb tidak valid %q: %w", s, err)
		}
		return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}, nil
	}
	return color.NRGBA{}, fmt.Errorf("format warna tidak dikenal: %q", s)
}

// MustColor untuk default yang sudah pasti valid.
func MustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha mengganti opasitas warna (0..1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(unit(a) * 255))
	return c
}

func channel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
