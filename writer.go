package roompack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/roompack/bitmap"
)

// Base names of the pack files, as referenced from the config.
const (
	titleName    = "main-8"
	blocksName   = "rooms-8"
	singleName   = "single-8"
	multipleName = "multiple-8"
	roomsName    = "rooms"
)

// Filenames written to the output directory.
const (
	ConfigFilename = "config.json"
	RoomsFilename  = roomsName + ".json"
	TitleFilename  = titleName + ".png"
)

const (
	blocksColumns   = 9
	singleColumns   = 4
	multipleColumns = 4
)

// SheetFilename returns the filename of the sprite sheet called name made of
// size by size tiles.
func SheetFilename(name string, size int) string {
	return fmt.Sprintf("%s-table-%d-%d.png", name, size, size)
}

type file struct {
	name string
	data []byte
}

func encodePNG(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Text such as the banner is written as is, without escaping HTML
// characters.
func encodeJSON(v interface{}, indent string) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

func (p *Pack) files() ([]file, error) {
	var files []file

	b, err := encodeJSON(p.Config, "")
	if err != nil {
		return nil, err
	}
	files = append(files, file{ConfigFilename, b})

	if b, err = encodeJSON(p.Rooms, "    "); err != nil {
		return nil, err
	}
	files = append(files, file{RoomsFilename, b})

	if b, err = encodePNG(p.Title); err != nil {
		return nil, err
	}
	files = append(files, file{TitleFilename, b})

	for _, sheet := range []struct {
		name    string
		arena   *bitmap.Arena
		columns int
	}{
		{blocksName, p.Blocks, blocksColumns},
		{singleName, p.Single, singleColumns},
		{multipleName, p.Multiple, multipleColumns},
	} {
		if b, err = encodePNG(bitmap.Sheet(sheet.arena, sheet.columns)); err != nil {
			return nil, fmt.Errorf("%s: %w", sheet.name, err)
		}
		files = append(files, file{SheetFilename(sheet.name, sheet.arena.Size()), b})
	}

	return files, nil
}

// Filenames returns the names of the files Write creates, in order.
func (p *Pack) Filenames() []string {
	return []string{
		ConfigFilename,
		RoomsFilename,
		TitleFilename,
		SheetFilename(blocksName, p.Blocks.Size()),
		SheetFilename(singleName, p.Single.Size()),
		SheetFilename(multipleName, p.Multiple.Size()),
	}
}

// Write writes the pack files to dir. Nothing is written unless every file
// encodes successfully.
func (p *Pack) Write(dir string) error {
	files, err := p.files()
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, f.name), f.data, os.FileMode(0644)); err != nil {
			return err
		}
	}

	return nil
}
