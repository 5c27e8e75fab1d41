package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/build"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/encounter"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/ui"
	"go-gem-defense/pkg/render"
)

var _ State = (*PlayState)(nil)

const passiveWindow = 8 // passive rows shown around the cursor

var speeds = []float64{1, 2, 4}

// PlayState runs the session at a fixed tick rate and lets the player edit
// the build while it runs.
type PlayState struct {
	sm      *StateMachine
	session *app.Session
	cat     *defs.Catalog
	editor  *app.Editor
	face    font.Face

	renderer  *render.WorldRenderer
	indicator *ui.StateIndicator
	waves     *ui.WaveIndicator
	health    *ui.HealthIndicator
	sheet     *ui.Panel
	help      *ui.Panel

	accumulator float64
	speed       int
	message     string
}

func NewPlayState(sm *StateMachine, session *app.Session, cat *defs.Catalog) *PlayState {
	face := ui.DefaultFace()
	ps := &PlayState{
		sm:        sm,
		session:   session,
		cat:       cat,
		editor:    app.NewEditor(cat),
		face:      face,
		renderer:  render.NewWorldRenderer(session.ECS),
		indicator: ui.NewStateIndicator(config.ScreenWidth-config.IndicatorOffsetX, config.IndicatorOffsetX, 10),
		waves:     ui.NewWaveIndicator(config.ScreenWidth/2, 30, face),
		health:    ui.NewHealthIndicator(20, 20, 200, 12, face),
		sheet:     ui.NewPanel(10, 50, 380, "Build", face),
		help:      ui.NewPanel(config.ScreenWidth-250, config.ScreenHeight-200, 240, "Controls", face),
	}
	session.Events.Subscribe(event.WaveStarted, event.ListenerFunc(func(event.Event) {
		ps.indicator.Pulse()
	}))
	return ps
}

func (s *PlayState) Enter() {}

func (s *PlayState) Exit() {}

func (s *PlayState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.sm.SetState(NewPauseState(s.sm, s, s.face))
		return
	}
	s.handleInput()

	s.accumulator += deltaTime * speeds[s.speed]
	for s.accumulator >= app.TickDuration && !s.session.Over() {
		s.session.Tick()
		s.accumulator -= app.TickDuration
	}
	if s.session.Over() {
		s.accumulator = 0
		s.sm.SetState(NewResultState(s.sm, s, s.face))
	}
}

// Restart starts the stage again with the current build.
func (s *PlayState) Restart() {
	s.session.Restart()
	s.renderer.SetECS(s.session.ECS)
	s.accumulator = 0
	s.message = "restarted"
}

func (s *PlayState) handleInput() {
	st := s.session.Build()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.session.SkipBreak()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		s.speed = (s.speed + 1) % len(speeds)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		s.editor.MoveCursor(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		s.editor.MoveCursor(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.enqueue(s.editor.Allocate(), true)
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		s.enqueue(s.editor.Refund(), true)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		s.enqueue(s.editor.CycleAbility(st))
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		s.enqueue(s.editor.AddLink(st))
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		s.enqueue(s.editor.RemoveLink(st))
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		s.enqueue(s.editor.EquipNext(st))
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		s.enqueue(s.editor.UnequipLast(st))
	}
	for i, k := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4} {
		if inpututil.IsKeyJustPressed(k) {
			s.editor.SelectSocket(i, st)
		}
	}
}

func (s *PlayState) enqueue(m build.Mutation, ok bool) {
	if !ok {
		return
	}
	desc := app.Describe(m)
	s.session.Enqueue(m, func(err error) {
		if err != nil {
			s.message = err.Error()
			return
		}
		s.message = desc
	})
}

func (s *PlayState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	target, hasTarget := s.session.Target()
	s.renderer.Draw(screen, target, hasTarget)

	enc := s.session.Encounter()
	stateColor := config.BreakStateColor
	if enc.Phase == encounter.SpawningGroup || enc.Phase == encounter.InterGroupWait {
		stateColor = config.WaveStateColor
	}
	s.indicator.Draw(screen, stateColor)
	if enc.Phase != encounter.Idle {
		s.waves.Draw(screen, min(enc.Wave+1, s.session.WaveCount()), s.session.WaveCount(), enc.Boss)
	}
	s.health.Draw(screen, s.session.DefenderHP(), config.DefenderHealth)
	s.sheet.Draw(screen, s.sheetLines())
	s.help.Draw(screen, helpLines)
}

var helpLines = []ui.Line{
	{Text: "up/down  select passive"},
	{Text: "enter    allocate"},
	{Text: "bksp     refund"},
	{Text: "1-4      select socket"},
	{Text: "q        next ability"},
	{Text: "l / k    link / unlink"},
	{Text: "e / u    equip / unequip"},
	{Text: "n        next wave now"},
	{Text: "tab      speed   p  pause"},
}

func (s *PlayState) sheetLines() []ui.Line {
	st := s.session.Build()
	stats := s.session.Stats()
	lines := []ui.Line{
		{Text: fmt.Sprintf("points %d/%d   kills %d   speed x%.0f", st.Spent(), st.Points(), stats.Kills, speeds[s.speed])},
	}

	vectors := s.session.Resolution().Vectors
	for i, sock := range st.Sockets() {
		label := fmt.Sprintf("[%d] empty", i+1)
		for _, v := range vectors {
			if v.Socket == i {
				label = fmt.Sprintf("[%d] %s  %.1f dmg / %.2fs  x%d p%d c%d",
					i+1, v.Name, v.Damage, v.FireInterval, v.ProjectileCount, v.PierceCount, v.ChainCount)
			}
		}
		lines = append(lines, ui.Line{Text: label, Highlight: i == s.editor.Socket()})
		for _, l := range sock.Links {
			lines = append(lines, ui.Line{Text: "      + " + l})
		}
	}
	for _, item := range st.Equipped() {
		lines = append(lines, ui.Line{Text: "  worn: " + item})
	}

	passives := s.editor.Passives()
	start := max(0, min(s.editor.Cursor()-passiveWindow/2, len(passives)-passiveWindow))
	for i := start; i < min(start+passiveWindow, len(passives)); i++ {
		id := passives[i]
		node, _ := s.cat.Passives.Node(id)
		lines = append(lines, ui.Line{
			Text:      fmt.Sprintf("  %-14s %d/%d", node.Name, st.Rank(id), node.RankCap),
			Highlight: i == s.editor.Cursor(),
		})
	}
	if s.message != "" {
		lines = append(lines, ui.Line{Text: "> " + s.message})
	}
	return lines
}
