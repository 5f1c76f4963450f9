package bitmap

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

type encoder struct {
	w    io.Writer
	size int
}

func luminance(c color.Color) (uint32, bool) {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return 0, false
	}
	return (299*r + 587*g + 114*b) / 1000, true
}

// With two colours the darker opaque one is ink, otherwise any opaque dark
// colour is.
func inkIndices(p color.Palette) []bool {
	isInk := make([]bool, len(p))
	if len(p) == 2 {
		l0, o0 := luminance(p[0])
		l1, o1 := luminance(p[1])
		switch {
		case o0 && o1:
			isInk[0] = l0 <= l1
			isInk[1] = !isInk[0]
		case o0:
			isInk[0] = true
		case o1:
			isInk[1] = true
		}
		return isInk
	}
	for i, c := range p {
		l, opaque := luminance(c)
		isInk[i] = opaque && l < 0x8000
	}
	return isInk
}

func (e *encoder) encode(m *image.Paletted) error {
	b := m.Bounds()
	isInk := inkIndices(m.Palette)
	stride := rowBytes(e.size)
	row := make([]byte, stride)

	for ty := 0; ty < b.Dy()/e.size; ty++ {
		for tx := 0; tx < b.Dx()/e.size; tx++ {
			for y := 0; y < e.size; y++ {
				for i := range row {
					row[i] = 0
				}
				for x := 0; x < e.size; x++ {
					if isInk[m.ColorIndexAt(tx*e.size+x, ty*e.size+y)] {
						row[x>>3] |= 0x80 >> uint(x&7)
					}
				}
				if _, err := e.w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Encode writes m to w as packed tiles of the given size, taken left to
// right and top to bottom. Images with more than two colours are reduced to
// two first.
func Encode(w io.Writer, m image.Image, size int) error {
	if !validSize(size) {
		return errBadSize
	}

	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx()%size != 0 || b.Dy()%size != 0 {
		return errors.New("bitmap: image is wrong size")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > len(Palette) {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, len(Palette)), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	e := encoder{w: w, size: size}

	return e.encode(pm)
}
