/*
Package roompack is a library for building room packs for the Playdate Manic
Miner engine from ZX Spectrum Manic Miner memory dumps.

A dump is a snapshot of memory loaded at 32768 from either the Bug Byte or
the Software Projects release. The rooms, sprites, title screen, music and
banner are decoded into a Pack which is then written out as two JSON files
and four PNG images using fixed filenames.
*/
package roompack

import (
	"errors"
	"fmt"
	"image"
	"io/ioutil"
	"log"

	"github.com/bodgit/roompack/bitmap"
	"github.com/bodgit/roompack/format"
	"github.com/bodgit/roompack/room"
)

const (
	titleAddress = 8192
	titleSize    = 4096
)

// ErrInputNotFound is returned when the dump cannot be read.
var ErrInputNotFound = errors.New("roompack: input file does not exist")

// RoomPack extracts room packs.
type RoomPack struct {
	options Options
	logger  *log.Logger
}

// New returns a RoomPack using options for the static configuration values.
func New(options Options, logger *log.Logger) *RoomPack {
	return &RoomPack{
		options: options,
		logger:  logger,
	}
}

// Pack is everything decoded from one dump.
type Pack struct {
	Format *format.Profile
	Config *Config
	Rooms  []*room.Room
	Title  *image.Paletted

	Blocks   *bitmap.Arena
	Single   *bitmap.Arena
	Multiple *bitmap.Arena
}

// Extract decodes b. If force is not empty it names the layout to use
// instead of detecting it.
func (r *RoomPack) Extract(b []byte, force string) (*Pack, error) {
	p, err := format.Detect(b, force)
	if err != nil {
		return nil, err
	}
	r.logger.Printf("Using %s format\n", p)

	config, err := extractConfig(b, p, r.options)
	if err != nil {
		return nil, err
	}

	screen, err := p.Region(b, titleAddress, titleSize)
	if err != nil {
		return nil, err
	}
	title, err := bitmap.DecodeScreen(screen)
	if err != nil {
		return nil, err
	}

	d := room.NewDecoder(b, p)
	rooms, err := d.Decode(func(rm *room.Room) {
		r.logger.Printf("Room %d: %s\n", rm.ID+1, rm.Name)
	})
	if err != nil {
		return nil, err
	}
	config.Special = d.Special()

	return &Pack{
		Format:   p,
		Config:   config,
		Rooms:    rooms,
		Title:    title,
		Blocks:   d.Blocks(),
		Single:   d.Single(),
		Multiple: d.Multiple(),
	}, nil
}

// ExtractFile reads the dump in file and writes the resulting pack to dir,
// which must already exist.
func (r *RoomPack) ExtractFile(file, dir, force string) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	pack, err := r.Extract(b, force)
	if err != nil {
		return err
	}

	if err := pack.Write(dir); err != nil {
		return err
	}
	r.logger.Printf("Wrote %d rooms to %s\n", len(pack.Rooms), dir)

	return nil
}
