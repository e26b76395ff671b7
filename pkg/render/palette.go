package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Fallback is the colour used for names that cannot be resolved.
var Fallback = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// ResolveColor normalizes a CSS colour keyword or hex triple to "#rrggbb".
// Unknown names resolve to white.
func ResolveColor(name string) string {
	return Hex(RGBA(name))
}

// RGBA resolves a colour keyword or hex triple. Names are matched
// case-insensitively and may contain spaces ("Light Blue").
func RGBA(name string) color.RGBA {
	c, ok := lookupColor(name)
	if !ok {
		return Fallback
	}
	return c
}

// KnownColor reports whether name resolves to a colour other than the fallback.
func KnownColor(name string) bool {
	_, ok := lookupColor(name)
	return ok
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TextColor picks black or white text for legibility on background bg.
func TextColor(bg color.RGBA) color.RGBA {
	// ITU-R BT.601 luma
	luma := (299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)) / 1000
	if luma < 128 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{A: 0xff}
}

func lookupColor(name string) (color.RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	s = strings.ReplaceAll(s, " ", "")
	c, ok := colornames.Map[s]
	return c, ok
}

func parseHex(s string) (color.RGBA, bool) {
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
