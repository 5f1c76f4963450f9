package room

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// The Spectrum character set is ASCII apart from 0x60 and 0x7F; only the
// copyright sign turns up in the game text.
var spectrumReplacer = strings.NewReplacer("\x7f", "©")

// Text decodes b from the Spectrum character set.
func Text(b []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return spectrumReplacer.Replace(string(s)), nil
}
