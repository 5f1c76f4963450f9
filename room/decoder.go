package room

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/roompack/bitmap"
	"github.com/bodgit/roompack/format"
)

// ErrOutOfOrder is returned when rooms are not decoded in ascending order.
var ErrOutOfOrder = errors.New("room: decoded out of order")

// Decoder decodes the rooms of one dump, collecting their sprites.
type Decoder struct {
	b       []byte
	profile *format.Profile

	blocks   *bitmap.Arena
	single   *bitmap.Arena
	multiple *bitmap.Arena
	special  SpecialSprites

	player bool
	next   int
}

// NewDecoder returns a Decoder reading b laid out as described by p.
func NewDecoder(b []byte, p *format.Profile) *Decoder {
	return &Decoder{
		b:        b,
		profile:  p,
		blocks:   bitmap.NewArena(bitmap.Small),
		single:   bitmap.NewArena(bitmap.Large),
		multiple: bitmap.NewArena(bitmap.Large),
		special:  SpecialSprites{},
	}
}

// Blocks returns the arena of 8 by 8 block and item tiles.
func (d *Decoder) Blocks() *bitmap.Arena {
	return d.blocks
}

// Single returns the arena of portal and special sprites.
func (d *Decoder) Single() *bitmap.Arena {
	return d.single
}

// Multiple returns the arena of player and guardian animation frames.
func (d *Decoder) Multiple() *bitmap.Arena {
	return d.multiple
}

// Special returns the special sprites registered so far.
func (d *Decoder) Special() SpecialSprites {
	return d.special
}

func (d *Decoder) region(address, n int) ([]byte, error) {
	return d.profile.Region(d.b, address, n)
}

func (d *Decoder) tiles(address, size, count int, property bool) ([]byte, error) {
	b, err := d.region(address, bitmap.RegionSize(size, count, property))
	if err != nil {
		return nil, err
	}
	a := d.multiple
	if size == bitmap.Small {
		a = d.blocks
	}
	return bitmap.Decode(b, size, count, property, a)
}

// One tile appended to the single sprite arena, returning its position.
func (d *Decoder) sprite(address int) (int, error) {
	b, err := d.region(address, bitmap.RegionSize(bitmap.Large, 1, false))
	if err != nil {
		return 0, err
	}
	tiles, _, err := bitmap.DecodeTiles(b, bitmap.Large, 1, false)
	if err != nil {
		return 0, err
	}
	return d.single.Append(tiles[0]), nil
}

// Player decodes the eight frames of the player sprite. These lead the
// multiple sprite arena so it must be called before the first room.
func (d *Decoder) Player() error {
	if d.player || d.next != 0 {
		return fmt.Errorf("%w: player sprites after room %d", ErrOutOfOrder, d.next)
	}
	if _, err := d.tiles(playerAddress, bitmap.Large, playerSprites, false); err != nil {
		return err
	}
	d.player = true
	return nil
}

func word(b []byte) string {
	return fmt.Sprintf("%02X", binary.LittleEndian.Uint16(b))
}

func hexByte(b byte) string {
	return fmt.Sprintf("%02X", b)
}

// Slots of a fixed capacity table up to the first one starting with the
// sentinel.
func scanSlots(b []byte, stride, capacity int, fn func([]byte)) {
	for i := 0; i < capacity && (i+1)*stride <= len(b); i++ {
		slot := b[i*stride : (i+1)*stride]
		if slot[0] == sentinel {
			return
		}
		fn(slot)
	}
}

func hGuardians(b []byte) []HGuardian {
	guardians := make([]HGuardian, 0, guardianSlots)
	scanSlots(b, guardianStride, guardianSlots, func(s []byte) {
		guardians = append(guardians, HGuardian{
			Attribute: hexByte(s[0]),
			Address:   fmt.Sprintf("%02X%02X", s[2], s[1]),
			Location:  hexByte(s[3]),
			Frame:     hexByte(s[4]),
			Min:       hexByte(s[5]),
			Max:       hexByte(s[6]),
		})
	})
	return guardians
}

func vGuardians(b []byte) []VGuardian {
	guardians := make([]VGuardian, 0, guardianSlots)
	scanSlots(b, guardianStride, guardianSlots, func(s []byte) {
		guardians = append(guardians, VGuardian{
			Attribute: hexByte(s[0]),
			Start:     hexByte(s[1]),
			Frame:     hexByte(s[2]),
			Location:  hexByte(s[3]),
			DeltaY:    hexByte(s[4]),
			Min:       hexByte(s[5]),
			Max:       hexByte(s[6]),
		})
	})
	return guardians
}

func items(b []byte) []string {
	items := make([]string, 0, itemSlots)
	scanSlots(b, itemStride, itemSlots, func(s []byte) {
		items = append(items, word(s[1:3]))
	})
	return items
}

// Room decodes room i. Rooms must be decoded in order starting from 0.
func (d *Decoder) Room(i int) (*Room, error) {
	if i != d.next || i >= Count {
		return nil, fmt.Errorf("%w: room %d, expected %d", ErrOutOfOrder, i, d.next)
	}

	address := Address(i)
	r := &Room{
		ID: i,
	}

	b, err := d.region(address+layoutOffset, layoutSize)
	if err != nil {
		return nil, err
	}
	layout := fmt.Sprintf("%X", b)
	width := len(layout) / layoutRows
	r.Layout = make([]string, 0, layoutRows)
	for j := 0; j < layoutRows; j++ {
		r.Layout = append(r.Layout, layout[j*width:(j+1)*width])
	}

	if b, err = d.region(address+nameOffset, nameSize); err != nil {
		return nil, err
	}
	name, err := Text(b)
	if err != nil {
		return nil, err
	}
	r.Name = strings.TrimSpace(name)
	r.Special = parseFlags(r.Name)

	attributes, err := d.tiles(address+blocksOffset, bitmap.Small, blockCount, true)
	if err != nil {
		return nil, err
	}
	r.Attributes = fmt.Sprintf("%X", attributes)

	if b, err = d.region(address+hGuardiansOffset, guardiansSize); err != nil {
		return nil, err
	}
	r.HGuardians = hGuardians(b)

	if b, err = d.region(address+startOffset, recordSize); err != nil {
		return nil, err
	}
	r.Start = Position{
		Left:    b[2] != 0,
		Address: word(b[4:6]),
	}

	if b, err = d.region(address+conveyorOffset, recordSize); err != nil {
		return nil, err
	}
	r.Conveyor = Position{
		Left:    b[0] == 0,
		Address: word(b[1:3]),
	}

	if b, err = d.region(address+itemsOffset, itemsSize); err != nil {
		return nil, err
	}
	r.Items = items(b)

	portal, err := d.sprite(address + portalSpriteOffset)
	if err != nil {
		return nil, err
	}

	// The item tile is kept with the blocks
	if _, err = d.tiles(address+itemSpriteOffset, bitmap.Small, 1, false); err != nil {
		return nil, err
	}

	if b, err = d.region(address+portalOffset, recordSize); err != nil {
		return nil, err
	}
	r.Portal = Portal{
		Sprite:  portal,
		Address: word(b[0:2]),
	}

	if b, err = d.region(address+vGuardiansOffset, guardiansSize); err != nil {
		return nil, err
	}
	r.VGuardians = vGuardians(b)

	if s, ok := specialRooms[i]; ok {
		index, err := d.sprite(address + specialOffset)
		if err != nil {
			return nil, err
		}
		d.special = append(d.special, SpecialSprite{
			Name:  s,
			Index: index,
		})
	}

	if _, err = d.tiles(address+guardianSpritesOffset, bitmap.Large, guardianSprites, false); err != nil {
		return nil, err
	}

	d.next++

	return r, nil
}

// Decode decodes the player sprites followed by every room in order. If fn is
// not nil it is called with each room as soon as it is decoded.
func (d *Decoder) Decode(fn func(*Room)) ([]*Room, error) {
	if err := d.Player(); err != nil {
		return nil, err
	}

	rooms := make([]*Room, 0, Count)
	for i := 0; i < Count; i++ {
		r, err := d.Room(i)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", i, err)
		}
		if fn != nil {
			fn(r)
		}
		rooms = append(rooms, r)
	}

	return rooms, nil
}
