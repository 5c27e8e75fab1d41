package ui

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the bitmap face every HUD element uses.
func DefaultFace() font.Face { return basicfont.Face7x13 }
