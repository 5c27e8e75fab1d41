// Command tdsim plays a stage headlessly many times with different seeds and
// reports how the configured build fares.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/targeting"
)

// tickChunk is how many ticks a run advances between cancellation checks.
const tickChunk = 600

type options struct {
	configPath string
	runs       int
	seed       int64
	maxTicks   int
	parallel   int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config/game.yaml", "game config (YAML)")
	flag.IntVar(&opts.runs, "runs", 20, "number of runs")
	flag.Int64Var(&opts.seed, "seed", 1, "seed of the first run; run i uses seed+i")
	flag.IntVar(&opts.maxTicks, "ticks", 60*60*30, "tick limit per run")
	flag.IntVar(&opts.parallel, "parallel", runtime.NumCPU(), "runs simulated at once")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadGame(opts.configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))
	if opts.runs < 1 {
		return fmt.Errorf("runs must be >= 1, got %d", opts.runs)
	}

	cat, program, err := app.LoadData(cfg)
	if err != nil {
		return err
	}

	results := make([]app.Stats, opts.runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.parallel, 1))
	for i := range opts.runs {
		g.Go(func() error {
			stats, err := simulate(ctx, cfg, cat, program, opts.seed+int64(i), opts.maxTicks)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report(results)
	return nil
}

func simulate(ctx context.Context, cfg config.Game, cat *defs.Catalog, program *targeting.Program, seed int64, maxTicks int) (app.Stats, error) {
	cfg.Seed = seed
	log := slog.Default().With("seed", seed)
	session, err := app.NewSession(app.Options{Config: cfg, Catalog: cat, Program: program, Logger: log})
	if err != nil {
		return app.Stats{}, err
	}
	for done := 0; done < maxTicks && !session.Over(); done += tickChunk {
		if err := ctx.Err(); err != nil {
			return app.Stats{}, err
		}
		session.Run(min(tickChunk, maxTicks-done))
	}
	stats := session.Stats()
	log.Debug("run finished", "won", stats.Won, "lost", stats.Lost, "ticks", stats.Ticks, "kills", stats.Kills)
	return stats, nil
}

func report(results []app.Stats) {
	var won, lost, kills, leaks, waves int
	var ticks int
	var hp float64
	for _, r := range results {
		switch {
		case r.Won:
			won++
		case r.Lost:
			lost++
		}
		kills += r.Kills
		leaks += r.Leaks
		waves += r.WavesCleared
		ticks += r.Ticks
		hp += r.DefenderHP
	}
	n := float64(len(results))
	slog.Info("simulation summary",
		"runs", len(results),
		"won", won,
		"lost", lost,
		"timed_out", len(results)-won-lost,
		"avg_waves", float64(waves)/n,
		"avg_kills", float64(kills)/n,
		"avg_leaks", float64(leaks)/n,
		"avg_seconds", float64(ticks)/n/config.TicksPerSecond,
		"avg_defender_hp", hp/n,
	)
}
