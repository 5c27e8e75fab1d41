package app

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gem-defense/internal/build"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/encounter"
	"go-gem-defense/internal/event"
)

func testCatalog(t *testing.T) *defs.Catalog {
	t.Helper()
	twoPoints := []defs.Point{{X: config.DefenderX + 200, Y: config.DefenderY}, {X: config.DefenderX - 200, Y: config.DefenderY}}
	wave := func(g defs.SpawnGroup) defs.WaveDefinition {
		return defs.WaveDefinition{Groups: []defs.SpawnGroup{g}}
	}
	cat, err := defs.NewCatalog(defs.Contents{
		Abilities: []defs.AbilityDefinition{{
			ID:   "BOLT",
			Name: "Bolt",
			Base: defs.BaseStats{Damage: 20, FireInterval: 0.5, ProjectileSpeed: 600, ProjectileCount: 1, CritChance: 0.3, CritMultiplier: 1.5},
		}},
		Modifiers: []defs.ModifierDefinition{{ID: "MORE", Kind: defs.ModifierMoreDamage, Multiplier: 1.5}},
		Origin:    "origin",
		Passives:  []defs.PassiveNodeDefinition{{ID: "origin", RankCap: 3}},
		Tiers: []defs.EnemyTier{
			{ID: "GRUNT", Health: 10, Speed: 30, Damage: 5, Reward: 2, Visuals: defs.Visuals{Radius: 8}},
			{ID: "RUNNER", Health: 15, Speed: 45, Damage: 5, Reward: 3, Visuals: defs.Visuals{Radius: 6}},
			{ID: "BRUTE", Health: 1e6, Speed: 600, Damage: 1000, Visuals: defs.Visuals{Radius: 12}},
		},
		Stages: []defs.Stage{
			{
				ID:          "field",
				DefaultTier: "GRUNT",
				SpawnPoints: twoPoints,
				WaveBreak:   10,
				Waves: []defs.WaveDefinition{
					wave(defs.SpawnGroup{Tier: "GRUNT", Count: 2, Interval: 5, SpawnPoint: -1}),
					wave(defs.SpawnGroup{Tier: "GRUNT", Count: 2, Interval: 5, SpawnPoint: -1}),
				},
			},
			{
				ID:          "mixed",
				DefaultTier: "GRUNT",
				SpawnPoints: twoPoints,
				WaveBreak:   20,
				Waves: []defs.WaveDefinition{
					wave(defs.SpawnGroup{Pool: []defs.TierChance{{Tier: "GRUNT", Chance: 0.5}, {Tier: "RUNNER", Chance: 0.5}}, Count: 6, Interval: 20, SpawnPoint: -1}),
					wave(defs.SpawnGroup{Pool: []defs.TierChance{{Tier: "GRUNT", Chance: 0.3}, {Tier: "RUNNER", Chance: 0.7}}, Count: 6, Interval: 15, SpawnPoint: -1}),
				},
			},
			{
				ID:          "siege",
				DefaultTier: "BRUTE",
				SpawnPoints: twoPoints,
				Waves:       []defs.WaveDefinition{wave(defs.SpawnGroup{Tier: "BRUTE", Count: 1, Interval: 1})},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

func testConfig(stage string) config.Game {
	cfg := config.DefaultGame()
	cfg.Seed = 42
	cfg.Stage = stage
	cfg.Build = config.BuildConfig{
		AllocationPoints: 1,
		Sockets:          1,
		MaxLinks:         2,
		StartingSockets:  []config.SocketConfig{{Ability: "BOLT"}},
	}
	return cfg
}

func newSession(t *testing.T, stage string) *Session {
	t.Helper()
	s, err := NewSession(Options{
		Config:  testConfig(stage),
		Catalog: testCatalog(t),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return s
}

func TestSessionClearsStage(t *testing.T) {
	s := newSession(t, "field")
	var cleared []int
	s.Events.Subscribe(event.WaveCleared, event.ListenerFunc(func(e event.Event) {
		cleared = append(cleared, e.Data.(event.WaveData).Wave)
	}))

	stats := s.Run(5000)

	assert.True(t, stats.Won)
	assert.False(t, stats.Lost)
	assert.Equal(t, 4, stats.Spawned)
	assert.Equal(t, 4, stats.Kills)
	assert.Equal(t, 0, stats.Leaks)
	assert.Equal(t, 8, stats.Reward)
	assert.Equal(t, 2, stats.WavesCleared)
	assert.Equal(t, []int{0, 1}, cleared)
	assert.Equal(t, config.DefenderHealth, stats.DefenderHP)
	assert.Equal(t, 1+2*2, s.Build().Points(), "points granted per cleared wave")
	assert.True(t, s.Encounter().Done)
}

func TestSessionDefenderFalls(t *testing.T) {
	s := newSession(t, "siege")
	var defeated int
	s.Events.Subscribe(event.DefenderDefeated, event.ListenerFunc(func(event.Event) { defeated++ }))

	stats := s.Run(2000)

	require.True(t, stats.Lost)
	assert.False(t, stats.Won)
	assert.Zero(t, stats.DefenderHP)
	assert.Equal(t, 1, defeated)
	assert.Equal(t, 1, stats.Leaks)

	ticks := stats.Ticks
	s.Tick()
	assert.Equal(t, ticks, s.Stats().Ticks, "ticking a finished run does nothing")
}

func TestEnqueueAppliesAtTickBoundary(t *testing.T) {
	s := newSession(t, "field")

	var first, second, third error
	calls := 0
	s.Enqueue(build.Mutation{Kind: build.MutAllocate, ID: "origin"}, func(err error) { calls++; first = err })
	s.Enqueue(build.Mutation{Kind: build.MutAllocate, ID: "origin"}, func(err error) { calls++; second = err })
	s.Enqueue(build.Mutation{Kind: build.MutAllocate, ID: "ghost"}, func(err error) { calls++; third = err })

	assert.Zero(t, calls)
	assert.Zero(t, s.Build().Rank("origin"))

	s.Tick()

	assert.Equal(t, 3, calls)
	assert.NoError(t, first)
	assert.ErrorIs(t, second, build.ErrInvariantViolation, "only one point to spend")
	var ref *defs.CatalogReferenceError
	assert.True(t, errors.As(third, &ref))
	assert.Equal(t, 1, s.Build().Rank("origin"))
}

func TestBuildChangesReachNextTick(t *testing.T) {
	s := newSession(t, "field")
	changed := 0
	s.Events.Subscribe(event.BuildChanged, event.ListenerFunc(func(event.Event) { changed++ }))

	s.Tick()
	s.Tick()
	assert.Equal(t, 1, changed)
	require.Len(t, s.Resolution().Vectors, 1)
	assert.Equal(t, 20.0, s.Resolution().Vectors[0].Damage)

	preview, err := s.Preview(build.Mutation{Kind: build.MutLink, Slot: 0, ID: "MORE"})
	require.NoError(t, err)
	assert.Equal(t, 30.0, preview.Vectors[0].Damage)
	assert.Equal(t, 20.0, s.Resolution().Vectors[0].Damage, "preview leaves the build alone")

	s.Enqueue(build.Mutation{Kind: build.MutLink, Slot: 0, ID: "MORE"}, nil)
	s.Tick()
	assert.Equal(t, 2, changed)
	assert.Equal(t, 30.0, s.Resolution().Vectors[0].Damage)
}

func TestSessionIsDeterministic(t *testing.T) {
	a := newSession(t, "mixed")
	b := newSession(t, "mixed")

	sa := a.Run(4000)
	sb := b.Run(4000)

	assert.Equal(t, sa, sb)
	assert.Equal(t, a.ECS.NextID, b.ECS.NextID)
	assert.Equal(t, 12, sa.Spawned)
}

func TestRestart(t *testing.T) {
	s := newSession(t, "field")
	s.Run(15)
	require.Equal(t, 2, s.Stats().Spawned)

	s.Restart()

	assert.Equal(t, encounter.State{}, s.Encounter())
	assert.Empty(t, s.ECS.Enemies)
	assert.NotZero(t, s.ECS.DefenderID)
	assert.Equal(t, Stats{}, s.Stats())
	_, ok := s.Target()
	assert.False(t, ok)

	s.Tick()
	assert.Equal(t, encounter.SpawningGroup, s.Encounter().Phase)
	assert.Equal(t, 0, s.Encounter().Wave)
}

func TestRestartReportsDroppedMutations(t *testing.T) {
	s := newSession(t, "field")
	s.Tick()
	points := s.Build().Points()

	var got []error
	s.Enqueue(build.Mutation{Kind: build.MutGrantPoints, N: 3}, func(err error) { got = append(got, err) })
	s.Enqueue(build.Mutation{Kind: build.MutGrantPoints, N: 1}, nil)

	s.Restart()
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], ErrSessionRestarted)

	s.Tick()
	s.Tick()
	assert.Len(t, got, 1, "callback runs once")
	assert.Equal(t, points, s.Build().Points())
}

func TestSkipBreak(t *testing.T) {
	s := newSession(t, "field")
	for i := 0; s.Encounter().Phase != encounter.WaveComplete; i++ {
		require.Less(t, i, 100)
		s.Tick()
	}
	s.SkipBreak()
	s.Tick()
	assert.Equal(t, 1, s.Encounter().Wave)
	assert.Equal(t, encounter.SpawningGroup, s.Encounter().Phase)
}

func TestCandidatesRespectRange(t *testing.T) {
	s := newSession(t, "field")
	near, ok := s.spawner.Spawn(encounter.SpawnRequest{Tier: "GRUNT", Position: defs.Point{X: config.DefenderX + 100, Y: config.DefenderY}})
	require.True(t, ok)
	_, ok = s.spawner.Spawn(encounter.SpawnRequest{Tier: "GRUNT", Position: defs.Point{X: config.DefenderX + config.AttackRange + 50, Y: config.DefenderY}})
	require.True(t, ok)

	cands := s.Candidates()
	require.Len(t, cands, 1)
	assert.Equal(t, near, cands[0].ID)
	assert.Equal(t, 10.0, cands[0].HP)
	assert.Equal(t, "GRUNT", cands[0].Tier)
}

func TestNewSessionErrors(t *testing.T) {
	cat := testCatalog(t)

	_, err := NewSession(Options{Config: testConfig("nowhere"), Catalog: cat})
	var ref *defs.CatalogReferenceError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, "stage", ref.Kind)

	cfg := testConfig("field")
	cfg.Build.StartingSockets = []config.SocketConfig{{Ability: "NOPE"}}
	_, err = NewSession(Options{Config: cfg, Catalog: cat})
	assert.Error(t, err)

	_, err = NewSession(Options{Config: testConfig("field")})
	assert.Error(t, err)
}
