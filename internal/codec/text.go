package codec

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawCenteredText menulis teks dengan titik tengah (cx, cy).
func DrawCenteredText(img *image.RGBA, text string, cx, cy float64, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	w := d.MeasureString(text)
	baseline := int(cy) + (face.Ascent-face.Descent)/2
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(cx)) - w/2,
		Y: fixed.I(baseline),
	}
	d.DrawString(text)
}

// TextWidth lebar teks dalam piksel.
func TextWidth(text string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(text).Ceil()
}
