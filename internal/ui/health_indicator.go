package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-gem-defense/internal/config"
)

// HealthIndicator draws the defender's health as a labelled bar.
type HealthIndicator struct {
	X, Y, Width, Height float32
	face                font.Face
}

func NewHealthIndicator(x, y, width, height float32, face font.Face) *HealthIndicator {
	return &HealthIndicator{X: x, Y: y, Width: width, Height: height, face: face}
}

func (h *HealthIndicator) Draw(screen *ebiten.Image, health, maxHealth float64) {
	frac := float32(0)
	if maxHealth > 0 {
		frac = max(0, min(float32(health/maxHealth), 1))
	}
	vector.DrawFilledRect(screen, h.X, h.Y, h.Width, h.Height, config.HealthBackColor, false)
	vector.DrawFilledRect(screen, h.X, h.Y, h.Width*frac, h.Height, config.HealthBarColor, false)
	vector.StrokeRect(screen, h.X, h.Y, h.Width, h.Height, 1, config.TextLightColor, false)

	label := fmt.Sprintf("%.0f / %.0f", health, maxHealth)
	text.Draw(screen, label, h.face, int(h.X+h.Width)+8, int(h.Y+h.Height), config.TextLightColor)
}
