// Package asset supplies decoded sprite bitmaps. Sprites are loaded once
// before the loop starts and never mutated afterwards.
package asset

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
)

// Sprite is a decoded bitmap with known pixel dimensions.
type Sprite struct {
	Name  string
	Image *image.RGBA
}

// Width returns the sprite width in pixels.
func (s *Sprite) Width() int { return s.Image.Bounds().Dx() }

// Height returns the sprite height in pixels.
func (s *Sprite) Height() int { return s.Image.Bounds().Dy() }

// Source returns the pixel data for software blits.
func (s *Sprite) Source() image.Image { return s.Image }

// Load decodes a PNG file into a sprite.
func Load(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sprite: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding sprite %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("sprite %s has no pixels", path)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	return &Sprite{Name: path, Image: rgba}, nil
}

// FromRows builds a sprite from equal-length rows of palette keys. Keys
// missing from the palette are transparent.
func FromRows(name string, rows []string, palette map[byte]color.RGBA) (*Sprite, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("sprite %s: no rows", name)
	}
	w := len(rows[0])
	img := image.NewRGBA(image.Rect(0, 0, w, len(rows)))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("sprite %s: row %d has width %d, want %d", name, y, len(row), w)
		}
		for x := 0; x < w; x++ {
			if c, ok := palette[row[x]]; ok {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return &Sprite{Name: name, Image: img}, nil
}

// shipRows is the default 16x16 player ship, nose up.
var shipRows = strings.Fields(`
	.......oo.......
	......owwo......
	......owwo......
	.....owccwo.....
	.....owccwo.....
	....owwccwwo....
	....owwwwwwo....
	...owwwwwwwwo...
	..owwbwwwwbwwo..
	.owwbbwwwwbbwwo.
	owwbbbwwwwbbbwwo
	owbbboowwoobbbwo
	obbboo.oo.oobbbo
	oooo..rrrr..oooo
	.......rr.......
	................
`)

var shipPalette = map[byte]color.RGBA{
	'o': {R: 20, G: 24, B: 46, A: 255},
	'w': {R: 230, G: 236, B: 245, A: 255},
	'c': {R: 80, G: 200, B: 240, A: 255},
	'b': {R: 60, G: 90, B: 170, A: 255},
	'r': {R: 250, G: 120, B: 40, A: 255},
}

// Ship returns the built-in player ship sprite.
func Ship() *Sprite {
	s, err := FromRows("ship", shipRows, shipPalette)
	if err != nil {
		panic(fmt.Sprintf("asset: built-in ship: %v", err))
	}
	return s
}
