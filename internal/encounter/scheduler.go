package encounter

import (
	"log/slog"

	"go-gem-defense/internal/defs"
)

// Scheduler turns a stage definition into a stream of spawn requests, one tick
// at a time. It is owned by a single session and is not safe for concurrent use.
type Scheduler struct {
	cat   *defs.Catalog
	stage defs.Stage
	rng   RandomSource
	log   *slog.Logger

	st      State
	groups  []Group
	elapsed int // ticks since the group started or last spawned
	waited  int // ticks spent in InterGroupWait or WaveComplete
}

// New creates an idle scheduler for stage. A nil logger means slog.Default().
// The logger is used as given; callers attach the stage attribute.
func New(cat *defs.Catalog, stage defs.Stage, rng RandomSource, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{cat: cat, stage: stage, rng: rng, log: log}
}

// State returns a snapshot of the current progress.
func (s *Scheduler) State() State { return s.st }

// WaveCount returns the number of waves in the stage.
func (s *Scheduler) WaveCount() int { return len(s.stage.Waves) }

// Start begins the first wave. It does nothing unless the scheduler is idle.
func (s *Scheduler) Start() Step {
	var step Step
	if s.st.Phase != Idle {
		return step
	}
	s.beginWave(0, &step)
	return step
}

// Reset cancels wave progression and returns to Idle. In-flight group cursors
// and timers are discarded.
func (s *Scheduler) Reset() {
	s.st = State{}
	s.groups = nil
	s.elapsed = 0
	s.waited = 0
	s.log.Info("encounter reset")
}

// Advance skips the rest of the wave break. It reports whether a new wave began.
func (s *Scheduler) Advance() (Step, bool) {
	var step Step
	if s.st.Phase != WaveComplete {
		return step, false
	}
	s.beginWave(s.st.Wave+1, &step)
	return step, true
}

// Tick advances the state machine by one tick.
func (s *Scheduler) Tick() Step {
	var step Step
	switch s.st.Phase {
	case SpawningGroup:
		s.st.ElapsedInWave++
		s.elapsed++
		g := s.groups[s.st.Group]
		if s.elapsed >= g.Interval {
			s.elapsed = 0
			step.Spawns = append(step.Spawns, s.spawn(g))
			s.st.Remaining--
			if s.st.Remaining <= 0 {
				s.finishGroup(&step)
			}
		}
	case InterGroupWait:
		s.st.ElapsedInWave++
		s.waited++
		if s.waited >= s.groupDelay() {
			s.startGroup(s.st.Group + 1)
		}
	case WaveComplete:
		s.waited++
		if s.waited >= s.stage.WaveBreak {
			s.beginWave(s.st.Wave+1, &step)
		}
	}
	return step
}

func (s *Scheduler) groupDelay() int {
	if s.st.Boss || s.st.Wave >= len(s.stage.Waves) {
		return 0
	}
	return s.stage.Waves[s.st.Wave].GroupDelay
}

func (s *Scheduler) beginWave(index int, step *Step) {
	if index >= len(s.stage.Waves) {
		s.st = State{Phase: AllWavesComplete, Wave: index, Done: true}
		s.groups = nil
		step.AllComplete = true
		s.log.Info("all waves complete", "waves", len(s.stage.Waves))
		return
	}

	groups, errs := s.Plan(index)
	for _, err := range errs {
		s.log.Warn("wave definition recovered", "wave", index, "error", err)
	}
	_, boss := s.stage.BossWaves[index]

	s.st = State{Phase: SpawningGroup, Wave: index, Boss: boss}
	s.groups = groups
	s.elapsed = 0
	s.waited = 0
	step.WaveStarted = true
	s.log.Info("wave started", "wave", index, "groups", len(groups), "boss", boss)

	if len(groups) == 0 {
		s.completeWave(step)
		return
	}
	s.startGroup(0)
}

func (s *Scheduler) startGroup(i int) {
	s.st.Phase = SpawningGroup
	s.st.Group = i
	s.st.Remaining = s.groups[i].Count
	s.elapsed = 0
	s.waited = 0
}

func (s *Scheduler) finishGroup(step *Step) {
	if s.st.Group+1 >= len(s.groups) {
		s.completeWave(step)
		return
	}
	s.st.Phase = InterGroupWait
	s.waited = 0
	if s.groupDelay() <= 0 {
		s.startGroup(s.st.Group + 1)
	}
}

func (s *Scheduler) completeWave(step *Step) {
	s.st.Phase = WaveComplete
	s.st.Remaining = 0
	s.waited = 0
	step.WaveCompleted = true
	s.log.Info("wave complete", "wave", s.st.Wave, "dispatched", s.st.Dispatched, "ticks", s.st.ElapsedInWave)
}

func (s *Scheduler) spawn(g Group) SpawnRequest {
	req := SpawnRequest{
		Wave:             s.st.Wave,
		Group:            s.st.Group,
		Tier:             g.Tier,
		HealthMultiplier: 1,
		Position:         s.position(g.SpawnPoint),
		Count:            1,
	}
	switch {
	case len(g.Bosses) > 0:
		e := g.Bosses[(g.Count-s.st.Remaining)%len(g.Bosses)]
		req.Tier = e.Tier
		req.Name = e.Name
		req.Boss = true
		req.HealthMultiplier = e.HealthMultiplier
	case len(g.Pool) > 0:
		req.Tier = PickTier(g.Pool, s.rng.Float64())
	}
	s.st.Dispatched++
	return req
}

// position resolves a spawn point index; negative or out-of-range indexes
// cycle through the stage's spawn points.
func (s *Scheduler) position(index int) defs.Point {
	points := s.stage.SpawnPoints
	if len(points) == 0 {
		return defs.Point{}
	}
	if index >= 0 && index < len(points) {
		return points[index]
	}
	return points[s.st.Dispatched%len(points)]
}
