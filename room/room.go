/*
Package room decodes the twenty 1024 byte cavern records of a Manic Miner
dump.

Each record holds a 512 byte layout, the cavern name, eight block tiles each
preceded by their attribute byte, the start position, conveyor, items,
portal, guardian tables and eight guardian sprite frames. Sprites are
appended to three arenas shared by every room: blocks, single sprites and
multiple sprites. Positions within those arenas are written into the records
(the portal sprite, the special sprites) so rooms must be decoded in order.
*/
package room

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Count is the number of rooms in a dump.
const Count = 20

const (
	base   = 12288
	stride = 1024

	layoutOffset = 0
	layoutSize   = 512
	layoutRows   = 16

	nameOffset = 512
	nameSize   = 32

	blocksOffset = 544
	blockCount   = 8

	startOffset    = 616
	conveyorOffset = 623
	recordSize     = 7

	itemsOffset = 629
	itemsSize   = 27
	itemSlots   = 5
	itemStride  = 5

	portalSpriteOffset = 656
	portalOffset       = 688
	itemSpriteOffset   = 692

	hGuardiansOffset = 702
	vGuardiansOffset = 733
	guardiansSize    = 28
	guardianSlots    = 4
	guardianStride   = 7

	specialOffset = 736

	guardianSpritesOffset = 768
	guardianSprites       = 8

	playerAddress = 512
	playerSprites = 8

	sentinel = 0xff
)

// Address returns the logical address of room i.
func Address(i int) int {
	return base + i*stride
}

// Flags marks the rooms that need special handling by the engine, based on
// their name.
type Flags uint8

// Room flags.
const (
	FlagKong Flags = 1 << iota
	FlagSkylab
	FlagEugene
	FlagSolar
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagKong, "Kong"},
	{FlagSkylab, "Skylab"},
	{FlagEugene, "Eugene"},
	{FlagSolar, "Solar"},
}

func parseFlags(name string) Flags {
	var f Flags
	for _, n := range flagNames {
		if strings.Contains(name, n.name) {
			f |= n.flag
		}
	}
	return f
}

// Has reports whether every flag in g is set.
func (f Flags) Has(g Flags) bool {
	return f&g == g
}

// MarshalJSON encodes the set flags as an object of true values.
func (f Flags) MarshalJSON() ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteByte('{')
	first := true
	for _, n := range flagNames {
		if !f.Has(n.flag) {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(n.name)
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteString(":true")
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// HGuardian is a horizontally patrolling guardian.
type HGuardian struct {
	Attribute string `json:"attr"`
	Address   string `json:"addr"`
	Location  string `json:"location"`
	Frame     string `json:"frame"`
	Min       string `json:"min"`
	Max       string `json:"max"`
}

// VGuardian is a vertically patrolling guardian.
type VGuardian struct {
	Attribute string `json:"attr"`
	Frame     string `json:"frame"`
	Start     string `json:"start"`
	Location  string `json:"location"`
	DeltaY    string `json:"dy"`
	Min       string `json:"min"`
	Max       string `json:"max"`
}

// Position is a screen address with a direction.
type Position struct {
	Left    bool   `json:"left"`
	Address string `json:"addr"`
}

// Portal is the room exit. Sprite is the 1-based position of its tile in the
// single sprite arena.
type Portal struct {
	Sprite  int    `json:"id"`
	Address string `json:"addr"`
}

// Room is one decoded cavern.
type Room struct {
	Layout     []string    `json:"data"`
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	Special    Flags       `json:"special"`
	Attributes string      `json:"attr"`
	HGuardians []HGuardian `json:"HGuardians"`
	Start      Position    `json:"start"`
	Conveyor   Position    `json:"conveyor"`
	Items      []string    `json:"items"`
	Portal     Portal      `json:"portal"`
	VGuardians []VGuardian `json:"VGuardians"`
}
