package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/garland/inspector"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 28
	RowHeight    = 18
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
)

// panelHeight returns the height drawPanel uses for sections.
func panelHeight(sections []inspector.Section) int32 {
	h := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		h += RowHeight + int32(len(s.Fields))*RowHeight
	}
	return h
}

// drawPanel renders sections in a titled panel with its top-left at (x, y).
func drawPanel(x, y int32, title string, sections []inspector.Section) {
	h := panelHeight(sections)
	rl.DrawRectangle(x, y, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLines(x, y, PanelWidth, h, ColorPanelBorder)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(title, x+PanelPadding, y+6, 18, ColorHeaderText)

	row := y + HeaderHeight + PanelPadding/2
	for _, s := range sections {
		rl.DrawText(s.Title, x+PanelPadding, row, 15, ColorSectionText)
		row += RowHeight
		for _, f := range s.Fields {
			if f.Widget == inspector.WidgetBar {
				drawBar(x+PanelPadding*2, row, f)
			} else {
				rl.DrawText(fmt.Sprintf("%s: %s", f.Name, f.Text()), x+PanelPadding*2, row, 14, ColorText)
			}
			row += RowHeight
		}
	}
}

// drawBar renders a horizontal progress bar.
func drawBar(x, y int32, f inspector.Field) {
	ratio := float32(f.Ratio())

	const barWidth, barHeight = int32(120), int32(12)
	rl.DrawText(f.Name, x, y, 14, ColorTextDim)

	barX := x + 70
	rl.DrawRectangle(barX, y+1, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y+1, int32(float32(barWidth)*ratio), barHeight, ColorBarFill)
	rl.DrawText(f.Text(), barX+barWidth+5, y, 14, ColorTextDim)
}
