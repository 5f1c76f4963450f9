/*
Package format identifies which of the two known Manic Miner memory layouts a
dump uses and translates logical addresses into byte offsets within it.

Addresses are relative to the snapshot load address of 32768. The Bug Byte
release needs no remapping. The Software Projects release shifts several
regions by a few bytes, described by an offset table of (threshold, delta)
pairs: an address is moved by the delta of the last entry whose threshold it
reaches.
*/
package format

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	signatureAddress = 1120
	signatureLength  = 14
)

var (
	// ErrUnrecognized is returned when no known signature matches.
	ErrUnrecognized = errors.New("format: unrecognized layout")
	// ErrInvalidForced is returned when a forced layout name is unknown.
	ErrInvalidForced = errors.New("format: invalid forced layout")
	// ErrTruncated is returned when a region extends past the end of the dump.
	ErrTruncated = errors.New("format: truncated region")
)

// Offset shifts every address at or above Threshold by Delta, until the next
// Offset in the table applies.
type Offset struct {
	Threshold int
	Delta     int
}

// Profile describes one known layout.
type Profile struct {
	Name    string
	Offsets []Offset
}

// Known layout names.
const (
	BugByte          = "Bug Byte"
	SoftwareProjects = "Software Projects"
)

type signature struct {
	magic   string
	profile Profile
}

// Tested in order, first match wins.
var signatures = []signature{
	{
		magic: "1F0F1F1E1B1F1E1F1F171F0F1F1D",
		profile: Profile{
			Name: BugByte,
		},
	},
	{
		magic: "0F1F1F0F1F1E1B1F1D1F171F1F1B",
		profile: Profile{
			Name: SoftwareProjects,
			Offsets: []Offset{
				{1134, 6},
				{3114, 13},
				{3187, 11},
				{7424, 0},
			},
		},
	},
}

func (s signature) clone() Profile {
	return Profile{
		Name:    s.profile.Name,
		Offsets: append([]Offset(nil), s.profile.Offsets...),
	}
}

// Profiles returns every known layout in detection order.
func Profiles() []Profile {
	p := make([]Profile, 0, len(signatures))
	for _, s := range signatures {
		p = append(p, s.clone())
	}
	return p
}

// Signature returns the magic bytes expected at the signature address for the
// named layout.
func Signature(name string) ([]byte, error) {
	for _, s := range signatures {
		if s.profile.Name == name {
			return hex.DecodeString(s.magic)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidForced, name)
}

// Detect returns the profile matching the signature window of b. If force is
// not empty the window is ignored and the profile with that exact name is
// returned instead.
func Detect(b []byte, force string) (*Profile, error) {
	if force != "" {
		for _, s := range signatures {
			if s.profile.Name == force {
				p := s.clone()
				return &p, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidForced, force)
	}

	if len(b) < signatureAddress+signatureLength {
		return nil, ErrUnrecognized
	}
	window := b[signatureAddress : signatureAddress+signatureLength]

	for _, s := range signatures {
		magic, err := hex.DecodeString(s.magic)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(window, magic) {
			p := s.clone()
			return &p, nil
		}
	}

	return nil, ErrUnrecognized
}

// Map returns the byte offset of address within a dump using this layout.
func (p *Profile) Map(address int) int {
	var delta int
	for _, o := range p.Offsets {
		if address < o.Threshold {
			break
		}
		delta = o.Delta
	}
	return address + delta
}

// Region returns the n bytes at address, after mapping it through the
// profile.
func (p *Profile) Region(b []byte, address, n int) ([]byte, error) {
	offset := p.Map(address)
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, fmt.Errorf("%w: %d bytes at %d (offset %d, dump is %d bytes)", ErrTruncated, n, address, offset, len(b))
	}
	return b[offset : offset+n], nil
}

func (p *Profile) String() string {
	return p.Name
}
