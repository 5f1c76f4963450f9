package roompack

import (
	"github.com/bodgit/roompack/format"
	"github.com/bodgit/roompack/room"
)

const (
	titleMusicAddress = 1134
	titleMusicSize    = 285

	inGameMusicAddress = 1420
	inGameMusicSize    = 64

	bannerAddress = 7424
	bannerSize    = 256
)

// Config is the top level description of a room pack.
type Config struct {
	Name            string              `json:"Name"`
	Scale           int                 `json:"Scale"`
	Menu            string              `json:"Menu"`
	SingleSprites   string              `json:"SingleSprites"`
	MultipleSprites string              `json:"MultipleSprites"`
	Blocks          string              `json:"Blocks"`
	Levels          string              `json:"Levels"`
	TitleMusic      [][3]int            `json:"TitleMusic"`
	ShowPiano       bool                `json:"ShowPiano"`
	Banner          []string            `json:"Banner"`
	InGameMusic     []int               `json:"InGameMusic"`
	Special         room.SpecialSprites `json:"Special"`
}

func extractConfig(b []byte, p *format.Profile, options Options) (*Config, error) {
	c := &Config{
		Name:            options.Name,
		Scale:           options.Scale,
		Menu:            titleName,
		SingleSprites:   singleName,
		MultipleSprites: multipleName,
		Blocks:          blocksName,
		Levels:          roomsName,
		ShowPiano:       options.ShowPiano,
		Special:         room.SpecialSprites{},
	}

	// Title tune is stored as (duration, pitch, pitch) triplets
	music, err := p.Region(b, titleMusicAddress, titleMusicSize)
	if err != nil {
		return nil, err
	}
	c.TitleMusic = make([][3]int, 0, len(music)/3)
	for i := 0; i+3 <= len(music); i += 3 {
		c.TitleMusic = append(c.TitleMusic, [3]int{int(music[i]), int(music[i+1]), int(music[i+2])})
	}

	if music, err = p.Region(b, inGameMusicAddress, inGameMusicSize); err != nil {
		return nil, err
	}
	c.InGameMusic = make([]int, 0, len(music))
	for _, v := range music {
		c.InGameMusic = append(c.InGameMusic, int(v))
	}

	banner, err := p.Region(b, bannerAddress, bannerSize)
	if err != nil {
		return nil, err
	}
	s, err := room.Text(banner)
	if err != nil {
		return nil, err
	}
	c.Banner = []string{s}

	return c, nil
}
