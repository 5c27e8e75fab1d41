package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-gem-defense/internal/config"
)

// Line is one row of a panel. Highlight draws it in the accent colour.
type Line struct {
	Text      string
	Highlight bool
}

// Panel is a translucent box of text lines, used for the build sheet and
// the controls help.
type Panel struct {
	X, Y, Width float32
	Title       string
	face        font.Face
}

func NewPanel(x, y, width float32, title string, face font.Face) *Panel {
	return &Panel{X: x, Y: y, Width: width, Title: title, face: face}
}

var (
	panelBackground = color.RGBA{R: 20, G: 20, B: 30, A: 200}
	panelBorder     = color.RGBA{R: 70, G: 100, B: 120, A: 255}
	panelAccent     = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

func (p *Panel) Draw(screen *ebiten.Image, lines []Line) {
	height := float32((len(lines)+2)*config.TextLineHeight) + 4
	vector.DrawFilledRect(screen, p.X, p.Y, p.Width, height, panelBackground, false)
	vector.StrokeRect(screen, p.X, p.Y, p.Width, height, 1, panelBorder, false)

	x := int(p.X) + 8
	y := int(p.Y) + config.TextLineHeight
	text.Draw(screen, p.Title, p.face, x, y, config.TextLightColor)
	y += config.TextLineHeight + 4
	for _, l := range lines {
		var clr color.Color = config.TextLightColor
		if l.Highlight {
			clr = panelAccent
		}
		text.Draw(screen, l.Text, p.face, x, y, clr)
		y += config.TextLineHeight
	}
}
