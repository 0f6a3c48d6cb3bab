package codec

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"sync"
)

// Surface adalah pengganti canvas: ukuran tampil (client) + backing RGBA.
// Lebar backing = clientWidth - inset, supaya gambar tidak melar.
type Surface struct {
	mu      sync.Mutex
	clientW int
	clientH int
	inset   int
	img     *image.RGBA
}

func NewSurface(clientW, clientH, inset int) *Surface {
	s := &Surface{clientW: clientW, clientH: clientH, inset: inset}
	s.resize()
	return s
}

// SetClientSize dipanggil saat window di-resize.
func (s *Surface) SetClientSize(w, h int) {
	s.mu.Lock()
	s.clientW, s.clientH = w, h
	s.mu.Unlock()
}

// Resize menyamakan backing dengan ukuran tampil. true jika ukuran berubah.
func (s *Surface) Resize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resize()
}

func (s *Surface) resize() bool {
	w := s.clientW - s.inset
	h := s.clientH
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.img != nil && s.img.Bounds().Dx() == w && s.img.Bounds().Dy() == h {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return true
}

// Size ukuran backing (canvas.width / canvas.height).
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) ClientWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientW
}

// ScaleFactor = canvas.width / canvas.clientWidth.
func (s *Surface) ScaleFactor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clientW <= 0 {
		return 1
	}
	return float64(s.img.Bounds().Dx()) / float64(s.clientW)
}

// Draw me-resize lalu memberikan backing ke fn selama lock dipegang.
func (s *Surface) Draw(fn func(img *image.RGBA)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resize()
	fn(s.img)
}

// Snapshot salinan frame terakhir.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.img.Bounds())
	draw.Draw(out, out.Bounds(), s.img, image.Point{}, draw.Src)
	return out
}

func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Snapshot())
}

// Clear mengosongkan canvas (transparan).
func Clear(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}
