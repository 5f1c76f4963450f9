package room

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bodgit/roompack/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpSize = 32768

var bugByte = &format.Profile{Name: format.BugByte}

func newDump() []byte {
	return make([]byte, dumpSize)
}

func put(b []byte, address int, v ...byte) {
	copy(b[address:], v)
}

func TestRoom(t *testing.T) {
	b := newDump()
	a := Address(0)

	for i := 0; i < layoutSize; i++ {
		b[a+layoutOffset+i] = byte(i)
	}
	put(b, a+nameOffset, []byte("         Central Cavern         ")...)
	put(b, a+blocksOffset, 0x44)
	put(b, a+blocksOffset+9, 0x02)
	put(b, a+blocksOffset+63, 0x16)
	put(b, a+startOffset, 0x00, 0x00, 0x01, 0x00, 0xb4, 0x5c)
	put(b, a+conveyorOffset, 0x00, 0x3d, 0x78)
	put(b, a+itemsOffset, 0x06, 0x2d, 0x5c, 0x60, 0xff)
	put(b, a+itemsOffset+5, 0x03, 0x29, 0x5c, 0x60, 0xff)
	put(b, a+itemsOffset+10, 0xff)
	put(b, a+portalOffset, 0x1e, 0x5c)
	put(b, a+hGuardiansOffset, 0x46, 0x67, 0x5d, 0x60, 0x00, 0x66, 0x6f)
	put(b, a+hGuardiansOffset+7, 0xff)
	put(b, a+vGuardiansOffset, 0xff)

	d := NewDecoder(b, bugByte)
	r, err := d.Room(0)
	require.Nil(t, err)

	assert.Equal(t, 0, r.ID)
	require.Len(t, r.Layout, layoutRows)
	assert.Equal(t, "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F", r.Layout[0])
	assert.Equal(t, "E0E1E2E3E4E5E6E7E8E9EAEBECEDEEEFF0F1F2F3F4F5F6F7F8F9FAFBFCFDFEFF", r.Layout[15])

	assert.Equal(t, "Central Cavern", r.Name)
	assert.Equal(t, Flags(0), r.Special)
	assert.Equal(t, "4402000000000016", r.Attributes)

	assert.Equal(t, []HGuardian{
		{
			Attribute: "46",
			Address:   "5D67",
			Location:  "60",
			Frame:     "00",
			Min:       "66",
			Max:       "6F",
		},
	}, r.HGuardians)
	assert.Empty(t, r.VGuardians)
	assert.NotNil(t, r.VGuardians)

	assert.Equal(t, Position{Left: true, Address: "5CB4"}, r.Start)
	assert.Equal(t, Position{Left: true, Address: "783D"}, r.Conveyor)
	assert.Equal(t, []string{"5C2D", "5C29"}, r.Items)
	assert.Equal(t, Portal{Sprite: 1, Address: "5C1E"}, r.Portal)

	assert.Equal(t, blockCount+1, d.Blocks().Len())
	assert.Equal(t, 2, d.Single().Len())
	assert.Equal(t, guardianSprites, d.Multiple().Len())
}

func TestVGuardians(t *testing.T) {
	b := make([]byte, guardiansSize)
	put(b, 0, 0x43, 0x00, 0x04, 0x05, 0x02, 0x05, 0x64)
	put(b, 7, 0x44, 0x01, 0x0a, 0x05, 0xfd, 0x06, 0x70)
	put(b, 14, 0xff, 0x02, 0x10)

	assert.Equal(t, []VGuardian{
		{"43", "04", "00", "05", "02", "05", "64"},
		{"44", "0A", "01", "05", "FD", "06", "70"},
	}, vGuardians(b))

	// No sentinel, every slot is used
	full := make([]byte, guardiansSize)
	assert.Len(t, vGuardians(full), guardianSlots)
	assert.Len(t, hGuardians(full), guardianSlots)
}

func TestItems(t *testing.T) {
	b := make([]byte, itemsSize)
	for i := range b {
		b[i] = 0x01
	}
	assert.Equal(t, []string{"101", "101", "101", "101", "101"}, items(b))

	b[0] = sentinel
	assert.Empty(t, items(b))

	// Later slots are never read after the sentinel
	b[0] = 0x00
	b[5] = sentinel
	b[10] = 0x00
	assert.Equal(t, []string{"101"}, items(b))

	b[5] = 0x00
	put(b, 6, 0x05, 0x00)
	assert.Equal(t, []string{"101", "05", "101", "101", "101"}, items(b))
}

func TestFlags(t *testing.T) {
	tables := []struct {
		name string
		want Flags
	}{
		{"Central Cavern", 0},
		{"Eugene's Lair", FlagEugene},
		{"Miner Willy meets the Kong Beast", FlagKong},
		{"Return of the Alien Kong Beast", FlagKong},
		{"Skylab Landing Bay", FlagSkylab},
		{"Solar Power Generator", FlagSolar},
		{"kong", 0},
		{"Kong on Skylab", FlagKong | FlagSkylab},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, parseFlags(table.name), table.name)
	}

	b, err := json.Marshal(FlagSolar | FlagKong)
	require.Nil(t, err)
	assert.Equal(t, `{"Kong":true,"Solar":true}`, string(b))

	b, err = json.Marshal(Flags(0))
	require.Nil(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestSpecialSprites(t *testing.T) {
	d := NewDecoder(newDump(), bugByte)

	r, err := d.Room(0)
	require.Nil(t, err)
	assert.Equal(t, 1, r.Portal.Sprite)
	index, ok := d.Special().Lookup(Swordfish)
	assert.True(t, ok)
	assert.Equal(t, 2, index)

	for i := 1; i <= 3; i++ {
		r, err = d.Room(i)
		require.Nil(t, err)
	}
	// Room 3 has no special sprite
	assert.Len(t, d.Special(), 3)
	assert.Equal(t, 7, r.Portal.Sprite)
	assert.Equal(t, 7, d.Single().Len())

	r, err = d.Room(4)
	require.Nil(t, err)
	assert.Equal(t, 8, r.Portal.Sprite)
	index, ok = d.Special().Lookup(Eugene)
	assert.True(t, ok)
	assert.Equal(t, 9, index)

	b, err := json.Marshal(d.Special())
	require.Nil(t, err)
	assert.Equal(t, `{"Swordfish":2,"Plinth":4,"Boot":6,"Eugene":9}`, string(b))

	b, err = json.Marshal(SpecialSprites{})
	require.Nil(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestDecode(t *testing.T) {
	d := NewDecoder(newDump(), bugByte)

	var seen []int
	rooms, err := d.Decode(func(r *Room) {
		seen = append(seen, r.ID)
	})
	require.Nil(t, err)
	require.Len(t, rooms, Count)
	require.Len(t, seen, Count)
	for i, id := range seen {
		assert.Equal(t, i, id)
	}

	for i, r := range rooms {
		assert.Equal(t, i, r.ID)
		require.Len(t, r.Layout, layoutRows)
		for _, row := range r.Layout {
			assert.Len(t, row, 64)
		}
		assert.Len(t, r.Items, itemSlots)
	}

	assert.Len(t, d.Special(), len(specialRooms))
	assert.Equal(t, Count*(blockCount+1), d.Blocks().Len())
	assert.Equal(t, Count+len(specialRooms), d.Single().Len())
	assert.Equal(t, playerSprites+Count*guardianSprites, d.Multiple().Len())

	b, err := json.Marshal(rooms[0])
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(string(b), `{"data":["`))
	assert.Contains(t, string(b), `"special":{},"attr":"0000000000000000","HGuardians":[`)
}

func TestOutOfOrder(t *testing.T) {
	d := NewDecoder(newDump(), bugByte)

	_, err := d.Room(1)
	assert.True(t, errors.Is(err, ErrOutOfOrder))

	_, err = d.Room(0)
	require.Nil(t, err)

	_, err = d.Room(0)
	assert.True(t, errors.Is(err, ErrOutOfOrder))

	assert.True(t, errors.Is(d.Player(), ErrOutOfOrder))
}

func TestTruncated(t *testing.T) {
	d := NewDecoder(make([]byte, Address(Count-1)+512), bugByte)

	_, err := d.Decode(nil)
	assert.True(t, errors.Is(err, format.ErrTruncated))
}

func TestText(t *testing.T) {
	s, err := Text([]byte{0x7f, ' ', '1', '9', '8', '3', 0xe9})
	require.Nil(t, err)
	assert.Equal(t, "© 1983é", s)
}
