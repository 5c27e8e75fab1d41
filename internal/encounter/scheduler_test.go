package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gem-defense/internal/defs"
)

// fixedSource replays a list of draws, repeating the last one.
type fixedSource struct {
	draws []float64
	i     int
}

func (f *fixedSource) Float64() float64 {
	if len(f.draws) == 0 {
		return 0
	}
	v := f.draws[min(f.i, len(f.draws)-1)]
	f.i++
	return v
}

func testCatalog(t *testing.T) *defs.Catalog {
	t.Helper()
	cat, err := defs.NewCatalog(defs.Contents{
		Tiers: []defs.EnemyTier{
			{ID: "NORMAL", Health: 10},
			{ID: "FAST", Health: 5},
			{ID: "TOUGH", Health: 50},
		},
		Bosses: []defs.BossTemplate{
			{ID: "TRIO", Name: "Trio", Interval: 5, Entities: []defs.BossEntity{
				{Name: "One", Tier: "TOUGH", HealthMultiplier: 3},
				{Name: "Two", Tier: "TOUGH", HealthMultiplier: 3},
				{Name: "Three", Tier: "NORMAL", HealthMultiplier: 6},
			}},
			{ID: "SOLO", Name: "Solo", Interval: 1, Entities: []defs.BossEntity{{Name: "Alone", Tier: "GHOST"}}},
		},
	})
	require.NoError(t, err)
	return cat
}

func normalWave(count, interval int) defs.WaveDefinition {
	return defs.WaveDefinition{Groups: []defs.SpawnGroup{{Tier: "NORMAL", Count: count, Interval: interval}}}
}

// run ticks the scheduler n times and collects everything it produced.
func run(s *Scheduler, n int) (spawns []SpawnRequest, ticks []int) {
	for i := 1; i <= n; i++ {
		step := s.Tick()
		for _, r := range step.Spawns {
			spawns = append(spawns, r)
			ticks = append(ticks, i)
		}
	}
	return spawns, ticks
}

func TestScheduler_SingleGroupTiming(t *testing.T) {
	stage := defs.Stage{ID: "t", Waves: []defs.WaveDefinition{normalWave(5, 10)}, WaveBreak: 100}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)

	start := s.Start()
	assert.True(t, start.WaveStarted)
	assert.Equal(t, SpawningGroup, s.State().Phase)

	spawns, ticks := run(s, 50)
	require.Len(t, spawns, 5)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, ticks)
	for _, r := range spawns {
		assert.Equal(t, "NORMAL", r.Tier)
		assert.Equal(t, 1, r.Count)
		assert.False(t, r.Boss)
	}

	st := s.State()
	assert.Equal(t, WaveComplete, st.Phase)
	assert.Equal(t, 50, st.ElapsedInWave)
	assert.Equal(t, 5, st.Dispatched)
}

func TestScheduler_NotCompleteBeforeLastSpawn(t *testing.T) {
	stage := defs.Stage{ID: "t", Waves: []defs.WaveDefinition{normalWave(5, 10)}}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)
	s.Start()

	spawns, _ := run(s, 49)
	assert.Len(t, spawns, 4)
	assert.Equal(t, SpawningGroup, s.State().Phase)

	step := s.Tick()
	assert.Len(t, step.Spawns, 1)
	assert.True(t, step.WaveCompleted)
}

func TestScheduler_WaveBreakThenNextWaveThenDone(t *testing.T) {
	stage := defs.Stage{ID: "t", Waves: []defs.WaveDefinition{normalWave(1, 2), normalWave(2, 3)}, WaveBreak: 4}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)
	s.Start()

	run(s, 2)
	require.Equal(t, WaveComplete, s.State().Phase)

	run(s, 3)
	assert.Equal(t, WaveComplete, s.State().Phase)
	step := s.Tick()
	assert.True(t, step.WaveStarted)
	assert.Equal(t, 1, s.State().Wave)
	assert.Equal(t, 0, s.State().Dispatched)

	spawns, _ := run(s, 6)
	assert.Len(t, spawns, 2)
	for _, r := range spawns {
		assert.Equal(t, 1, r.Wave)
	}

	run(s, 3)
	step = s.Tick()
	assert.True(t, step.AllComplete)
	assert.Equal(t, AllWavesComplete, s.State().Phase)
	assert.True(t, s.State().Done)

	// Terminal state stays put.
	spawns, _ = run(s, 100)
	assert.Empty(t, spawns)
	assert.Equal(t, AllWavesComplete, s.State().Phase)
}

func TestScheduler_InterGroupWait(t *testing.T) {
	wave := defs.WaveDefinition{
		GroupDelay: 5,
		Groups: []defs.SpawnGroup{
			{Tier: "NORMAL", Count: 2, Interval: 2},
			{Tier: "FAST", Count: 1, Interval: 3},
		},
	}
	s := New(testCatalog(t), defs.Stage{ID: "t", Waves: []defs.WaveDefinition{wave}}, &fixedSource{}, nil)
	s.Start()

	spawns, ticks := run(s, 4)
	require.Len(t, spawns, 2)
	assert.Equal(t, []int{2, 4}, ticks)
	assert.Equal(t, InterGroupWait, s.State().Phase)

	run(s, 5)
	assert.Equal(t, SpawningGroup, s.State().Phase)
	assert.Equal(t, 1, s.State().Group)

	spawns, ticks = run(s, 3)
	require.Len(t, spawns, 1)
	assert.Equal(t, []int{3}, ticks)
	assert.Equal(t, "FAST", spawns[0].Tier)
	assert.Equal(t, 1, spawns[0].Group)
	assert.Equal(t, WaveComplete, s.State().Phase)
}

func TestScheduler_ZeroGroupWaveCompletesImmediately(t *testing.T) {
	stage := defs.Stage{ID: "t", Waves: []defs.WaveDefinition{{}, normalWave(1, 1)}}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)

	step := s.Start()
	assert.True(t, step.WaveStarted)
	assert.True(t, step.WaveCompleted)
	assert.Equal(t, WaveComplete, s.State().Phase)

	step = s.Tick()
	assert.True(t, step.WaveStarted)
	assert.Equal(t, 1, s.State().Wave)
}

func TestScheduler_BossOverrideReplacesGroups(t *testing.T) {
	waves := make([]defs.WaveDefinition, 6)
	for i := range waves {
		waves[i] = normalWave(10, 1)
	}
	stage := defs.Stage{ID: "t", Waves: waves, BossWaves: map[int]string{5: "TRIO"}}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)

	groups, errs := s.Plan(5)
	require.Empty(t, errs)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Bosses, 3)

	// Drive the scheduler into wave 5 and collect its spawns.
	s.Start()
	for s.State().Wave < 5 {
		s.Tick()
	}
	require.True(t, s.State().Boss)

	var spawns []SpawnRequest
	for s.State().Phase != WaveComplete {
		spawns = append(spawns, s.Tick().Spawns...)
	}
	require.Len(t, spawns, 3)
	names := []string{spawns[0].Name, spawns[1].Name, spawns[2].Name}
	assert.Equal(t, []string{"One", "Two", "Three"}, names)
	for _, r := range spawns {
		assert.True(t, r.Boss)
		assert.NotEqual(t, 1.0, r.HealthMultiplier)
	}
}

func TestScheduler_MissingBossFallsBack(t *testing.T) {
	stage := defs.Stage{
		ID:            "t",
		Waves:         []defs.WaveDefinition{normalWave(4, 1)},
		BossWaves:     map[int]string{0: "NOPE"},
		DefaultTier:   "NORMAL",
		FallbackCount: 2,
	}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)

	groups, errs := s.Plan(0)
	require.Len(t, errs, 1)
	var refErr *defs.CatalogReferenceError
	require.ErrorAs(t, errs[0], &refErr)
	assert.Equal(t, "NOPE", refErr.ID)
	require.Len(t, groups, 1)
	assert.Equal(t, "NORMAL", groups[0].Tier)
	assert.Equal(t, 2, groups[0].Count)

	s.Start()
	spawns, _ := run(s, 2*fallbackInterval)
	assert.Len(t, spawns, 2)
	assert.Equal(t, WaveComplete, s.State().Phase)
}

func TestScheduler_GroupBossOverride(t *testing.T) {
	wave := defs.WaveDefinition{Groups: []defs.SpawnGroup{
		{Tier: "NORMAL", Count: 1, Interval: 1},
		{Boss: "SOLO"},
	}}
	s := New(testCatalog(t), defs.Stage{ID: "t", Waves: []defs.WaveDefinition{wave}, DefaultTier: "FAST"}, &fixedSource{}, nil)
	s.Start()

	spawns, _ := run(s, 2)
	require.Len(t, spawns, 2)
	assert.Equal(t, "Alone", spawns[1].Name)
	// SOLO references an unknown tier, so the stage default is used.
	assert.Equal(t, "FAST", spawns[1].Tier)
	assert.Equal(t, 1.0, spawns[1].HealthMultiplier)
}

func TestScheduler_UnknownTierGroupSkipped(t *testing.T) {
	wave := defs.WaveDefinition{Groups: []defs.SpawnGroup{
		{Tier: "GHOST", Count: 3, Interval: 1},
		{Tier: "FAST", Count: 1, Interval: 1},
	}}
	s := New(testCatalog(t), defs.Stage{ID: "t", Waves: []defs.WaveDefinition{wave}}, &fixedSource{}, nil)

	groups, errs := s.Plan(0)
	assert.Len(t, errs, 1)
	require.Len(t, groups, 1)

	s.Start()
	spawns, _ := run(s, 1)
	require.Len(t, spawns, 1)
	assert.Equal(t, "FAST", spawns[0].Tier)
}

func TestScheduler_PoolDraws(t *testing.T) {
	pool := []defs.TierChance{{Tier: "NORMAL", Chance: 0.5}, {Tier: "FAST", Chance: 0.3}, {Tier: "TOUGH", Chance: 0.1}}
	wave := defs.WaveDefinition{Groups: []defs.SpawnGroup{{Pool: pool, Count: 4, Interval: 1}}}
	src := &fixedSource{draws: []float64{0.1, 0.6, 0.85, 0.95}}
	s := New(testCatalog(t), defs.Stage{ID: "t", Waves: []defs.WaveDefinition{wave}}, src, nil)
	s.Start()

	spawns, _ := run(s, 4)
	require.Len(t, spawns, 4)
	got := make([]string, len(spawns))
	for i, r := range spawns {
		got[i] = r.Tier
	}
	assert.Equal(t, []string{"NORMAL", "FAST", "TOUGH", "TOUGH"}, got)
}

func TestPickTier(t *testing.T) {
	pool := []defs.TierChance{{Tier: "A", Chance: 0.25}, {Tier: "B", Chance: 0.25}, {Tier: "C", Chance: 0.25}}
	tests := []struct {
		u    float64
		want string
	}{
		{0, "A"},
		{0.2499, "A"},
		{0.25, "B"},
		{0.5, "C"},
		{0.74, "C"},
		{0.75, "C"},
		{0.999, "C"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PickTier(pool, tt.u), "u=%v", tt.u)
	}
	assert.Equal(t, "", PickTier(nil, 0.5))
	assert.Equal(t, "X", PickTier([]defs.TierChance{{Tier: "X", Chance: 2}}, 0.99))
}

func TestScheduler_ResetReturnsToIdle(t *testing.T) {
	stage := defs.Stage{ID: "t", Waves: []defs.WaveDefinition{normalWave(5, 10)}}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)
	s.Start()
	run(s, 25)
	require.Equal(t, 2, s.State().Dispatched)

	s.Reset()
	assert.Equal(t, State{}, s.State())
	spawns, _ := run(s, 100)
	assert.Empty(t, spawns)

	// A restart replays the wave from scratch.
	s.Start()
	spawns, ticks := run(s, 50)
	assert.Len(t, spawns, 5)
	assert.Equal(t, 10, ticks[0])
}

func TestScheduler_AdvanceSkipsBreak(t *testing.T) {
	stage := defs.Stage{ID: "t", Waves: []defs.WaveDefinition{normalWave(1, 1), normalWave(1, 1)}, WaveBreak: 1000}
	s := New(testCatalog(t), stage, &fixedSource{}, nil)
	s.Start()

	_, ok := s.Advance()
	assert.False(t, ok)

	run(s, 1)
	step, ok := s.Advance()
	require.True(t, ok)
	assert.True(t, step.WaveStarted)
	assert.Equal(t, 1, s.State().Wave)
}

func TestScheduler_SpawnPoints(t *testing.T) {
	points := []defs.Point{{X: 1}, {X: 2}, {X: 3}}
	wave := defs.WaveDefinition{Groups: []defs.SpawnGroup{
		{Tier: "NORMAL", Count: 2, Interval: 1, SpawnPoint: 2},
		{Tier: "NORMAL", Count: 3, Interval: 1, SpawnPoint: -1},
	}}
	s := New(testCatalog(t), defs.Stage{ID: "t", Waves: []defs.WaveDefinition{wave}, SpawnPoints: points}, &fixedSource{}, nil)
	s.Start()

	spawns, _ := run(s, 5)
	require.Len(t, spawns, 5)
	xs := make([]float64, len(spawns))
	for i, r := range spawns {
		xs[i] = r.Position.X
	}
	assert.Equal(t, []float64{3, 3, 3, 1, 2}, xs)
}

func TestDefaultStageRunsToCompletion(t *testing.T) {
	cat := defs.Default()
	stage, ok := cat.Stage("meadow")
	require.True(t, ok)
	s := New(cat, stage, &fixedSource{draws: []float64{0.3, 0.7, 0.95}}, nil)
	s.Start()

	bossSpawns := 0
	for i := 0; i < 100000 && !s.State().Done; i++ {
		for _, r := range s.Tick().Spawns {
			_, known := cat.Tier(r.Tier)
			require.True(t, known, "spawned unknown tier %q", r.Tier)
			if r.Boss {
				bossSpawns++
			}
		}
	}
	assert.True(t, s.State().Done)
	assert.Greater(t, bossSpawns, 0)
}
