package codec

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

// ProcessArtwork memotong gambar menjadi square dari tengah
// lalu mengecilkannya ke size x size.
func ProcessArtwork(r io.Reader, size int) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Ambil dimensi terkecil untuk membuat kotak
	side := w
	if h < w {
		side = h
	}
	if size <= 0 || size > side {
		size = side
	}

	// Titik awal crop, relatif ke bounds asli
	x0 := bounds.Min.X + (w-side)/2
	y0 := bounds.Min.Y + (h-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if side == 0 {
		return dst, nil
	}

	// Nearest neighbour
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dst.Set(x, y, src.At(x0+x*side/size, y0+y*side/size))
		}
	}
	return dst, nil
}

// DrawArtwork menaruh album art di area chrome kiri, tengah vertikal.
func DrawArtwork(img *image.RGBA, art image.Image, width int) {
	if art == nil || width <= 0 {
		return
	}
	b := img.Bounds()
	side := width
	if b.Dy() < side {
		side = b.Dy()
	}
	ab := art.Bounds()
	if ab.Dx() < side {
		side = ab.Dx()
	}
	y := (b.Dy() - side) / 2
	draw.Draw(img, image.Rect(0, y, side, y+side), art, ab.Min, draw.Over)
}
