package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"go-gem-defense/internal/config"
)

var _ State = (*ResultState)(nil)

// ResultState shows the outcome of a finished run over the frozen field.
// Space or R starts the stage again with the same build.
type ResultState struct {
	sm   *StateMachine
	play *PlayState
	face font.Face
}

func NewResultState(sm *StateMachine, play *PlayState, face font.Face) *ResultState {
	return &ResultState{sm: sm, play: play, face: face}
}

func (s *ResultState) Enter() {}

func (s *ResultState) Exit() {}

func (s *ResultState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.play.Restart()
		s.sm.SetState(s.play)
	}
}

func (s *ResultState) Draw(screen *ebiten.Image) {
	s.play.Draw(screen)

	stats := s.play.session.Stats()
	title, clr := "STAGE CLEARED", config.HealthBarColor
	if stats.Lost {
		title, clr = "DEFENDER FELL", config.BossTextColor
	}
	lines := []string{
		title,
		fmt.Sprintf("waves %d   kills %d   leaks %d", stats.WavesCleared, stats.Kills, stats.Leaks),
		fmt.Sprintf("time %.1fs", float64(stats.Ticks)/config.TicksPerSecond),
		"space to play again",
	}
	y := config.ScreenHeight/2 - len(lines)*config.TextLineHeight/2
	for i, l := range lines {
		w := text.BoundString(s.face, l).Dx()
		c := config.TextLightColor
		if i == 0 {
			c = clr
		}
		text.Draw(screen, l, s.face, (config.ScreenWidth-w)/2, y, c)
		y += config.TextLineHeight
	}
}
