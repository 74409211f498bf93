package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// colorCache converts layout hex colours to raylib colours once.
type colorCache map[string]rl.Color

// get returns the colour for hex, or fallback when hex is empty or invalid.
func (c colorCache) get(hex string, fallback rl.Color) rl.Color {
	if hex == "" {
		return fallback
	}
	if col, ok := c[hex]; ok {
		return col
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		slog.Warn("invalid colour", "hex", hex, "error", err)
		c[hex] = fallback
		return fallback
	}
	r, g, b := parsed.RGB255()
	col := rl.NewColor(r, g, b, 255)
	c[hex] = col
	return col
}

// dim darkens col towards black; k = 1 leaves it unchanged.
func dim(col rl.Color, k float64) rl.Color {
	src := colorful.Color{R: float64(col.R) / 255, G: float64(col.G) / 255, B: float64(col.B) / 255}
	r, g, b := src.BlendRgb(colorful.Color{}, 1-k).Clamped().RGB255()
	return rl.NewColor(r, g, b, col.A)
}
