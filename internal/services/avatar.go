package services

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce     sync.Once
	parsedGoFont *opentype.Font
	parsedGoErr  error
)

// avatarPalette holds the background colors an avatar can get; the
// username hash picks one so a user always renders the same color.
var avatarPalette = []color.RGBA{
	{0x4C, 0x6E, 0xF5, 0xFF},
	{0x12, 0xB8, 0x86, 0xFF},
	{0xF0, 0x8C, 0x00, 0xFF},
	{0xE6, 0x4B, 0x80, 0xFF},
	{0x7A, 0x5C, 0xF0, 0xFF},
	{0x0C, 0xA6, 0x78, 0xFF},
	{0xDB, 0x5A, 0x42, 0xFF},
	{0x2D, 0x9C, 0xDB, 0xFF},
}

// RenderAvatarPNG renders the default profile picture for a new user: the
// username's first letter centered on a color derived from the username.
func RenderAvatarPNG(username string) ([]byte, error) {
	const size = 256

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := avatarPalette[hashUsername(username)%uint32(len(avatarPalette))]
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	face, err := newFontFace(128)
	if err != nil {
		return nil, err
	}
	defer func() { _ = face.Close() }()

	initial := avatarInitial(username)
	metrics := face.Metrics()
	textWidth := font.MeasureString(face, initial).Ceil()
	x := (size - textWidth) / 2
	y := (size-metrics.Height.Ceil())/2 + metrics.Ascent.Ceil()
	drawText(img, face, x, y, initial, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func avatarInitial(username string) string {
	for _, r := range strings.TrimSpace(username) {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func hashUsername(username string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(username)))
	return h.Sum32()
}

func newFontFace(size float64) (*opentype.Face, error) {
	fontOnce.Do(func() {
		parsedGoFont, parsedGoErr = opentype.Parse(goregular.TTF)
	})
	if parsedGoErr != nil {
		return nil, fmt.Errorf("parse font: %w", parsedGoErr)
	}
	face, err := opentype.NewFace(parsedGoFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	otFace, ok := face.(*opentype.Face)
	if !ok {
		return nil, fmt.Errorf("load font face: unexpected type")
	}
	return otFace, nil
}

func drawText(img draw.Image, face font.Face, x, y int, text string, clr color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
