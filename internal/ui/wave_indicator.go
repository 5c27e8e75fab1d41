package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"go-gem-defense/internal/config"
)

// WaveIndicator shows the current wave in roman numerals, red on boss waves.
type WaveIndicator struct {
	X, Y float32
	face font.Face
}

func NewWaveIndicator(x, y float32, face font.Face) *WaveIndicator {
	return &WaveIndicator{X: x, Y: y, face: face}
}

// toRoman converts a positive integer to roman numerals.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw renders "wave / total". wave is 1-based; zero draws nothing.
func (i *WaveIndicator) Draw(screen *ebiten.Image, wave, total int, boss bool) {
	if wave <= 0 {
		return
	}
	label := fmt.Sprintf("%s / %s", toRoman(wave), toRoman(total))
	if boss {
		label += "  BOSS"
	}
	var clr color.Color = config.TextLightColor
	if boss {
		clr = config.BossTextColor
	}
	w := text.BoundString(i.face, label).Dx()
	x := int(i.X) - w/2
	y := int(i.Y)

	// 1px outline
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				text.Draw(screen, label, i.face, x+dx, y+dy, color.Black)
			}
		}
	}
	text.Draw(screen, label, i.face, x, y, clr)
}
