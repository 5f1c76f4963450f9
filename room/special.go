package room

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Special names a sprite that the engine draws outside of the normal
// guardian and portal tables.
type Special int

// Special sprites.
const (
	Swordfish Special = iota
	Plinth
	Boot
	Eugene
)

var specialNames = [...]string{
	Swordfish: "Swordfish",
	Plinth:    "Plinth",
	Boot:      "Boot",
	Eugene:    "Eugene",
}

func (s Special) String() string {
	if s < 0 || int(s) >= len(specialNames) {
		return "Special(" + strconv.Itoa(int(s)) + ")"
	}
	return specialNames[s]
}

// Rooms carrying an extra sprite at specialOffset.
var specialRooms = map[int]Special{
	0: Swordfish,
	1: Plinth,
	2: Boot,
	4: Eugene,
}

// SpecialSprite maps a special sprite to its 1-based position in the single
// sprite arena.
type SpecialSprite struct {
	Name  Special
	Index int
}

// SpecialSprites lists the special sprites in the order they were found.
type SpecialSprites []SpecialSprite

// Lookup returns the arena position registered for s.
func (ss SpecialSprites) Lookup(s Special) (int, bool) {
	for _, sprite := range ss {
		if sprite.Name == s {
			return sprite.Index, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the list as a name to index object, keeping order.
func (ss SpecialSprites) MarshalJSON() ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteByte('{')
	for i, sprite := range ss {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(sprite.Name.String())
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(sprite.Index))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
