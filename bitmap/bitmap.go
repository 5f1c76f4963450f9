/*
Package bitmap implements the monochrome tile format used by ZX Spectrum
sprites and the Spectrum screen layout.

A tile is square, either 8 or 16 pixels per side. Each row is stored as one
or two bytes, most significant bit first, where a set bit is an ink pixel and
a clear bit is paper. Some tables prefix each tile with a single property
byte (for room blocks this is the attribute byte) which is returned
separately rather than treated as pixel data.

Decoded tiles are *image.Paletted values using Palette, where index 0 is
transparent paper and index 1 is black ink.
*/
package bitmap

import (
	"image"
	"image/color"
)

const (
	// Small is the side of a block or item tile.
	Small = 8
	// Large is the side of a sprite tile.
	Large = 16

	screenWidth  = 256
	screenHeight = 128
	screenBytes  = screenWidth * screenHeight >> 3
	thirdHeight  = 64
)

const (
	paper uint8 = iota
	ink
)

// Palette is the palette of every decoded tile and sheet.
var Palette = color.Palette{color.Transparent, color.Black}

func validSize(size int) bool {
	return size == Small || size == Large
}

func rowBytes(size int) int {
	return (size + 7) >> 3
}

// RegionSize returns the number of bytes occupied by count tiles of the given
// size, including the property byte of each tile if property is set.
func RegionSize(size, count int, property bool) int {
	stride := rowBytes(size) * size
	if property {
		stride++
	}
	return stride * count
}

// Arena is an append-only collection of equally sized tiles. The position of
// a tile in the arena is how other records refer to it.
type Arena struct {
	size  int
	tiles []*image.Paletted
}

// NewArena returns an empty arena of tiles with the given side.
func NewArena(size int) *Arena {
	return &Arena{
		size: size,
	}
}

// Append adds m to the end of the arena and returns its 1-based position,
// which is also the length of the arena afterwards.
func (a *Arena) Append(m *image.Paletted) int {
	if b := m.Bounds(); b.Dx() != a.size || b.Dy() != a.size {
		panic("bitmap: tile does not match arena size")
	}
	a.tiles = append(a.tiles, m)
	return len(a.tiles)
}

// Len returns the number of tiles in the arena.
func (a *Arena) Len() int {
	return len(a.tiles)
}

// Size returns the side of each tile in pixels.
func (a *Arena) Size() int {
	return a.size
}

// Tile returns the tile at 0-based index i.
func (a *Arena) Tile(i int) *image.Paletted {
	return a.tiles[i]
}
