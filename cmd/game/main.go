package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/audio"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/state"
)

const defaultConfigPath = "config/game.yaml"

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", defaultConfigPath, "game config (YAML)")
	flag.Parse()
	if p := os.Getenv("GEMDEF_CONFIG"); p != "" {
		*cfgPath = p
	}

	cfg, err := config.LoadGame(*cfgPath)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))
	slog.Info("gem defense starting", "config", *cfgPath, "stage", cfg.Stage)

	cat, program, err := app.LoadData(cfg)
	if err != nil {
		return err
	}
	session, err := app.NewSession(app.Options{Config: cfg, Catalog: cat, Program: program})
	if err != nil {
		return err
	}

	if cfg.Audio {
		player := audio.NewPlayer(0.4, slog.Default())
		player.Init()
		player.Subscribe(session.Events)
		defer player.Close()
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewPlayState(sm, session, cat))

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Gem Defense")
	ebiten.SetTPS(config.TicksPerSecond)
	if err := ebiten.RunGame(&AppGame{stateMachine: sm, lastUpdateTime: time.Now()}); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
