package config

import (
	_ "embed"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed assets/sprites.yaml
var spritesYAML []byte

// Sprite is a glyph sprite: a list of frames, each a list of equal-width rows.
type Sprite struct {
	Frames [][]string `yaml:"frames"`
}

// Size returns the frame dimensions in cells.
func (s Sprite) Size() (w, h int) {
	if len(s.Frames) == 0 || len(s.Frames[0]) == 0 {
		return 0, 0
	}
	return utf8.RuneCountInString(s.Frames[0][0]), len(s.Frames[0])
}

// Frame returns frame i, wrapping out-of-range indices.
func (s Sprite) Frame(i int) []string {
	if len(s.Frames) == 0 {
		return nil
	}
	i %= len(s.Frames)
	if i < 0 {
		i += len(s.Frames)
	}
	return s.Frames[i]
}

// SpriteSheet maps sprite keys ("dude", "star", ...) to sprites.
type SpriteSheet map[string]Sprite

// LoadSprites parses the embedded sprite sheet and checks every sprite in
// required is present and well-formed.
func LoadSprites(required ...string) (SpriteSheet, error) {
	return parseSprites(spritesYAML, required...)
}

func parseSprites(data []byte, required ...string) (SpriteSheet, error) {
	var sheet SpriteSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("config: cannot parse sprites: %w", err)
	}

	for _, key := range required {
		if _, ok := sheet[key]; !ok {
			return nil, fmt.Errorf("config: missing sprite %q", key)
		}
	}

	for key, sprite := range sheet {
		if len(sprite.Frames) == 0 {
			return nil, fmt.Errorf("config: sprite %q has no frames", key)
		}
		w, h := sprite.Size()
		for i, frame := range sprite.Frames {
			if len(frame) != h {
				return nil, fmt.Errorf("config: sprite %q frame %d has %d rows, expected %d", key, i, len(frame), h)
			}
			for _, row := range frame {
				if utf8.RuneCountInString(row) != w {
					return nil, fmt.Errorf("config: sprite %q frame %d row %q is not %d wide", key, i, row, w)
				}
			}
		}
	}

	return sheet, nil
}
