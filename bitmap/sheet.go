package bitmap

import (
	"image"

	"golang.org/x/image/draw"
)

// Sheet lays the tiles of a out in a grid with the given number of columns,
// filling rows from the top left. Unused cells of the last row are left
// transparent.
func Sheet(a *Arena, columns int) *image.Paletted {
	rows := (a.Len() + columns - 1) / columns
	m := image.NewPaletted(image.Rect(0, 0, columns*a.Size(), rows*a.Size()), Palette)

	for i, t := range a.tiles {
		p := image.Pt(i%columns*a.Size(), i/columns*a.Size())
		draw.Draw(m, image.Rectangle{Min: p, Max: p.Add(t.Bounds().Size())}, t, t.Bounds().Min, draw.Src)
	}

	return m
}
