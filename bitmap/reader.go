package bitmap

import (
	"errors"
	"image"
)

var (
	errBadSize   = errors.New("bitmap: tile size must be 8 or 16")
	errNotEnough = errors.New("bitmap: not enough image data")
	errArena     = errors.New("bitmap: arena holds a different tile size")
)

type decoder struct {
	size     int
	property bool

	properties []byte
}

func (d *decoder) decodeTile(b []byte) *image.Paletted {
	if d.property {
		d.properties = append(d.properties, b[0])
		b = b[1:]
	}

	stride := rowBytes(d.size)
	m := image.NewPaletted(image.Rect(0, 0, d.size, d.size), Palette)
	for y := 0; y < d.size; y++ {
		for x := 0; x < d.size; x++ {
			if b[y*stride+x>>3]&(0x80>>uint(x&7)) != 0 {
				m.SetColorIndex(x, y, ink)
			}
		}
	}
	return m
}

// DecodeTiles decodes count tiles of the given size from the start of b. If
// property is set each tile is preceded by one property byte; these are
// returned in tile order.
func DecodeTiles(b []byte, size, count int, property bool) ([]*image.Paletted, []byte, error) {
	if !validSize(size) {
		return nil, nil, errBadSize
	}
	if len(b) < RegionSize(size, count, property) {
		return nil, nil, errNotEnough
	}

	d := decoder{
		size:     size,
		property: property,
	}
	stride := RegionSize(size, 1, property)

	tiles := make([]*image.Paletted, 0, count)
	for i := 0; i < count; i++ {
		tiles = append(tiles, d.decodeTile(b[i*stride:(i+1)*stride]))
	}

	return tiles, d.properties, nil
}

// Decode decodes count tiles from b as DecodeTiles does and appends them to
// a in order.
func Decode(b []byte, size, count int, property bool, a *Arena) ([]byte, error) {
	if a.Size() != size {
		return nil, errArena
	}

	tiles, properties, err := DecodeTiles(b, size, count, property)
	if err != nil {
		return nil, err
	}
	for _, m := range tiles {
		a.Append(m)
	}

	return properties, nil
}

// DecodeScreen decodes the upper two thirds of a Spectrum display file into
// a 256 by 128 image. Within each third, consecutive 32 byte rows step
// through the character rows first and the pixel lines second.
func DecodeScreen(b []byte) (*image.Paletted, error) {
	if len(b) < screenBytes {
		return nil, errNotEnough
	}

	const stride = screenWidth >> 3

	m := image.NewPaletted(image.Rect(0, 0, screenWidth, screenHeight), Palette)
	for row := 0; row < screenHeight; row++ {
		y := screenRow(row)
		for i, v := range b[row*stride : (row+1)*stride] {
			for bit := 0; bit < 8; bit++ {
				if v&(0x80>>uint(bit)) != 0 {
					m.SetColorIndex(i<<3+bit, y, ink)
				}
			}
		}
	}

	return m, nil
}

func screenRow(row int) int {
	y := row>>3 + (row&7)<<3
	if row >= thirdHeight {
		y += thirdHeight - 8
	}
	return y
}
