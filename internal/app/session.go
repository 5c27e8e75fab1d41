package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go-gem-defense/internal/build"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/encounter"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/system"
	"go-gem-defense/internal/targeting"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
)

// ErrSessionRestarted is reported to the done callback of a build change that
// was still queued when the session restarted.
var ErrSessionRestarted = errors.New("session restarted")

// TickDuration is the simulated time of one tick, in seconds.
const TickDuration = 1.0 / config.TicksPerSecond

// Options configure a new session. Catalog is shared read-only between
// sessions; everything else is owned by the session.
type Options struct {
	Config  config.Game
	Catalog *defs.Catalog
	// Program drives target selection. Nil means nearest enemy first.
	Program *targeting.Program
	Logger  *slog.Logger
	// Events receives simulation notifications. Nil creates a private
	// dispatcher. A dispatcher must not be shared between sessions.
	Events *event.Dispatcher
}

// Stats summarise a run.
type Stats struct {
	Ticks        int
	Spawned      int
	Kills        int
	Leaks        int
	Volleys      int
	WavesCleared int
	Reward       int
	DefenderHP   float64
	Won          bool
	Lost         bool
}

type pendingMutation struct {
	m    build.Mutation
	done func(error)
}

// Session is one run of a stage: the player's build, the wave schedule, the
// targeting program and the world they act on. All mutation happens inside
// Tick; Enqueue may be called from any goroutine.
type Session struct {
	cfg    config.Game
	cat    *defs.Catalog
	stage  defs.Stage
	log    *slog.Logger
	rng    *utils.PRNGService
	Events *event.Dispatcher

	build     *build.State
	resolver  *build.Resolver
	scheduler *encounter.Scheduler
	targeting *targeting.Runtime

	ECS        *entity.ECS
	damage     *system.DamageSystem
	spawner    *system.SpawnSystem
	movement   *system.MovementSystem
	combat     *system.CombatSystem
	projectile *system.ProjectileSystem
	effects    *system.VisualEffectSystem

	mu      sync.Mutex
	pending []pendingMutation
	skip    bool

	started    bool
	allSpawned bool
	stats      Stats
}

// NewSession builds a session for opts.Config.Stage and seeds the build from
// the configured starting sockets and items.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if opts.Catalog == nil {
		return nil, fmt.Errorf("new session: nil catalog")
	}
	stage, ok := opts.Catalog.Stage(cfg.Stage)
	if !ok {
		return nil, fmt.Errorf("new session: %w", &defs.CatalogReferenceError{Kind: "stage", ID: cfg.Stage, Where: "config"})
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	events := opts.Events
	if events == nil {
		events = event.NewDispatcher(log)
	}
	program := opts.Program
	if program == nil {
		program = targeting.NearestProgram()
	}

	s := &Session{
		cfg:    cfg,
		cat:    opts.Catalog,
		stage:  stage,
		log:    log.With("stage", stage.ID),
		rng:    utils.NewPRNGService(cfg.Seed),
		Events: events,
	}
	s.build = build.NewState(s.cat, limitsFrom(cfg.Build), cfg.Build.AllocationPoints)
	if err := seedBuild(s.build, cfg.Build); err != nil {
		return nil, fmt.Errorf("new session: starting build: %w", err)
	}
	floors := build.Floors{
		FireInterval:    cfg.Floors.FireInterval,
		AreaRadius:      cfg.Floors.AreaRadius,
		ProjectileSpeed: cfg.Floors.ProjectileSpeed,
	}
	s.resolver = build.NewResolver(s.cat, floors, s.log)
	s.scheduler = encounter.New(s.cat, stage, s.rng, s.log)
	s.targeting = targeting.NewRuntime(program, s.log)
	s.resetWorld()

	events.SubscribeAll(&sessionListener{session: s}, event.EnemyDestroyed, event.EnemySpawned)
	s.log.Info("session created", "seed", s.rng.Seed(), "waves", s.scheduler.WaveCount())
	return s, nil
}

func limitsFrom(b config.BuildConfig) build.Limits {
	slots := make(map[defs.SlotClass]int, len(b.Slots))
	for class, n := range b.Slots {
		slots[defs.SlotClass(class)] = n
	}
	return build.Limits{Sockets: b.Sockets, MaxLinks: b.MaxLinks, Slots: slots}
}

func seedBuild(st *build.State, b config.BuildConfig) error {
	for i, sock := range b.StartingSockets {
		if err := st.Socket(i, sock.Ability); err != nil {
			return err
		}
		for _, link := range sock.Links {
			if err := st.Link(i, link); err != nil {
				return err
			}
		}
	}
	for _, item := range b.StartingEquipped {
		if err := st.Equip(item); err != nil {
			return err
		}
	}
	return nil
}

// resetWorld replaces the ECS and every system bound to it.
func (s *Session) resetWorld() {
	s.ECS = entity.NewECS()
	s.damage = system.NewDamageSystem(s.ECS, s.Events)
	s.spawner = system.NewSpawnSystem(s.ECS, s.cat, s.Events, s.log)
	s.movement = system.NewMovementSystem(s.ECS, s.damage, s.Events)
	s.combat = system.NewCombatSystem(s.ECS, s.cat, s.rng, s.Events)
	s.projectile = system.NewProjectileSystem(s.ECS, s.damage)
	s.effects = system.NewVisualEffectSystem(s.ECS)
	s.spawner.SpawnDefender()
}

// Enqueue schedules a build change for the next tick boundary. done, if not
// nil, is called from Tick with the result.
func (s *Session) Enqueue(m build.Mutation, done func(error)) {
	s.mu.Lock()
	s.pending = append(s.pending, pendingMutation{m: m, done: done})
	s.mu.Unlock()
}

// Tick advances the session by one fixed step. The order is: queued build
// changes, stat resolution, wave schedule, spawns, movement, targeting,
// attacks, projectiles. Attacks use the vectors resolved at the start of
// the tick. Tick is a no-op once the run is over.
func (s *Session) Tick() {
	if s.Over() {
		return
	}
	s.applyPending()
	if s.resolver.Refresh(s.build) {
		res := s.resolver.Current()
		s.Events.Dispatch(event.Event{Type: event.BuildChanged, Data: event.BuildChangedData{
			Revision: res.Revision,
			Sockets:  len(res.Vectors),
		}})
	}
	vectors := s.resolver.Current().Vectors

	var step encounter.Step
	switch {
	case !s.started:
		step = s.scheduler.Start()
		s.started = true
	case s.takeSkip():
		var ok bool
		if step, ok = s.scheduler.Advance(); !ok {
			step = s.scheduler.Tick()
		}
	default:
		step = s.scheduler.Tick()
	}
	s.handleStep(step)

	s.movement.Update(TickDuration)

	origin := defs.Point{X: config.DefenderX, Y: config.DefenderY}
	out := s.targeting.Run(origin, s.Candidates())

	s.stats.Volleys += s.combat.Update(TickDuration, vectors, out.Target, out.Found)
	s.projectile.Update(TickDuration)
	s.effects.Update(TickDuration)

	s.ECS.GameTime += TickDuration
	s.stats.Ticks++
	s.finishTick()
}

// SkipBreak asks for the next wave to begin at the next tick if the schedule
// is between waves at that point.
func (s *Session) SkipBreak() {
	s.mu.Lock()
	s.skip = true
	s.mu.Unlock()
}

func (s *Session) takeSkip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	skip := s.skip
	s.skip = false
	return skip
}

func (s *Session) applyPending() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, p := range pending {
		err := build.Apply(s.build, p.m)
		if err != nil {
			s.log.Debug("build change rejected", "kind", p.m.Kind, "id", p.m.ID, "err", err)
		}
		if p.done != nil {
			p.done(err)
		}
	}
}

func (s *Session) handleStep(step encounter.Step) {
	st := s.scheduler.State()
	if step.WaveStarted {
		s.log.Info("wave started", "wave", st.Wave+1, "boss", st.Boss)
		s.Events.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Wave: st.Wave, Boss: st.Boss}})
	}
	for _, req := range step.Spawns {
		s.spawner.Spawn(req)
	}
	if step.WaveCompleted {
		s.stats.WavesCleared++
		if s.cfg.PointsPerWave > 0 {
			s.Enqueue(build.Mutation{Kind: build.MutGrantPoints, N: s.cfg.PointsPerWave}, nil)
		}
		s.Events.Dispatch(event.Event{Type: event.WaveCleared, Data: event.WaveData{Wave: st.Wave, Boss: st.Boss}})
	}
	if step.AllComplete {
		s.allSpawned = true
		s.Events.Dispatch(event.Event{Type: event.AllWavesCleared, Data: event.WaveData{Wave: st.Wave}})
	}
}

func (s *Session) finishTick() {
	s.stats.DefenderHP = s.DefenderHP()
	switch {
	case !s.damage.DefenderAlive():
		s.stats.Lost = true
		s.log.Info("defender fell", "ticks", s.stats.Ticks, "wave", s.scheduler.State().Wave+1)
	case s.allSpawned && len(s.ECS.Enemies) == 0:
		s.stats.Won = true
		s.log.Info("stage cleared", "ticks", s.stats.Ticks, "kills", s.stats.Kills)
	}
}

// Candidates lists the enemies within attack range of the defender, in
// spawn order.
func (s *Session) Candidates() []targeting.Candidate {
	var out []targeting.Candidate
	for _, id := range s.ECS.EnemyIDs() {
		pos := s.ECS.Positions[id]
		if utils.Distance(config.DefenderX, config.DefenderY, pos.X, pos.Y) > config.AttackRange {
			continue
		}
		c := targeting.Candidate{ID: id, Position: defs.Point{X: pos.X, Y: pos.Y}, Tier: s.ECS.Enemies[id].Tier}
		if h, ok := s.ECS.Healths[id]; ok {
			c.HP = h.Value
		}
		out = append(out, c)
	}
	return out
}

// Restart resets the wave schedule and the world. The build, including any
// points granted so far, carries over. Queued build changes are dropped and
// their callbacks receive ErrSessionRestarted.
func (s *Session) Restart() {
	s.mu.Lock()
	dropped := s.pending
	s.pending = nil
	s.skip = false
	s.mu.Unlock()

	for _, p := range dropped {
		if p.done != nil {
			p.done(fmt.Errorf("%v dropped: %w", p.m.Kind, ErrSessionRestarted))
		}
	}

	s.scheduler.Reset()
	s.targeting.Clear()
	s.resetWorld()
	s.started = false
	s.allSpawned = false
	s.stats = Stats{}
	s.log.Info("session restarted")
}

// Run ticks until the run is over or maxTicks have elapsed.
func (s *Session) Run(maxTicks int) Stats {
	for i := 0; i < maxTicks && !s.Over(); i++ {
		s.Tick()
	}
	return s.Stats()
}

// Over reports whether the stage was cleared or the defender fell.
func (s *Session) Over() bool { return s.stats.Won || s.stats.Lost }

func (s *Session) Stats() Stats { return s.stats }

// Build exposes the player build for reading. Change it through Enqueue.
func (s *Session) Build() *build.State { return s.build }

// Resolution is the stat resolution the current tick used.
func (s *Session) Resolution() build.Resolution { return s.resolver.Current() }

// Preview resolves the build as it would be after m, without applying it.
func (s *Session) Preview(m build.Mutation) (build.Resolution, error) {
	return s.resolver.Preview(s.build, m)
}

func (s *Session) Encounter() encounter.State { return s.scheduler.State() }

func (s *Session) WaveCount() int { return s.scheduler.WaveCount() }

func (s *Session) Stage() defs.Stage { return s.stage }

// Target returns the enemy the targeting program last assigned.
func (s *Session) Target() (types.EntityID, bool) { return s.targeting.Target() }

// SetProgram swaps the targeting program from the next tick on.
func (s *Session) SetProgram(p *targeting.Program) { s.targeting.SetProgram(p) }

func (s *Session) DefenderHP() float64 {
	if h, ok := s.ECS.Healths[s.ECS.DefenderID]; ok {
		return h.Value
	}
	return 0
}
