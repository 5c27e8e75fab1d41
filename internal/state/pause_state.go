package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-gem-defense/internal/config"
)

var _ State = (*PauseState)(nil)

var pauseOverlay = color.RGBA{0, 0, 0, 128}

// PauseState freezes the simulation and draws the paused game underneath.
type PauseState struct {
	sm            *StateMachine
	previousState State
	face          font.Face
}

func NewPauseState(sm *StateMachine, prevState State, face font.Face) *PauseState {
	return &PauseState{sm: sm, previousState: prevState, face: face}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.sm.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, pauseOverlay, false)

	label := "PAUSED"
	w := text.BoundString(s.face, label).Dx()
	text.Draw(screen, label, s.face, (config.ScreenWidth-w)/2, config.ScreenHeight/2, config.TextLightColor)
}

func (s *PauseState) Exit() {}
