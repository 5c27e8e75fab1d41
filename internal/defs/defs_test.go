package defs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := Default()
	require.NotNil(t, cat)
	assert.NoError(t, cat.Validate())

	stage, ok := cat.Stage("meadow")
	require.True(t, ok)
	assert.NotEmpty(t, stage.Waves)
	assert.NotEmpty(t, stage.SpawnPoints)
	for wave, boss := range stage.BossWaves {
		_, ok := cat.Boss(boss)
		assert.True(t, ok, "boss %q of wave %d", boss, wave)
	}
}

func TestPassiveTreeParents(t *testing.T) {
	tree := NewPassiveTree("o", []PassiveNodeDefinition{
		{ID: "o", RankCap: 1, Children: []string{"a", "b"}},
		{ID: "a", RankCap: 1, Children: []string{"c"}},
		{ID: "b", RankCap: 1, Children: []string{"c"}},
		{ID: "c", RankCap: 1},
	})

	assert.Equal(t, []string{"a", "b"}, tree.Parents("c"))
	assert.Empty(t, tree.Parents("o"))
	_, ok := tree.Node("missing")
	assert.False(t, ok)
}

func TestValidateRejectsCycle(t *testing.T) {
	_, err := NewCatalog(Contents{
		Origin: "o",
		Passives: []PassiveNodeDefinition{
			{ID: "o", RankCap: 1, Children: []string{"a"}},
			{ID: "a", RankCap: 1, Children: []string{"b"}},
			{ID: "b", RankCap: 1, Children: []string{"a"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	_, err := NewCatalog(Contents{
		Modifiers:   []ModifierDefinition{{ID: "M", Kind: "bogus"}},
		Equippables: []EquippableDefinition{{ID: "E", Slot: "boots", Stats: StatMap{"luck": {Flat: 1}}}},
		Origin:      "o",
		Passives: []PassiveNodeDefinition{
			{ID: "o", RankCap: 0, Children: []string{"ghost"}},
		},
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `modifier "M": unknown kind "bogus"`)
	assert.Contains(t, msg, `unknown slot "boots"`)
	assert.Contains(t, msg, `unknown stat "luck"`)
	assert.Contains(t, msg, `rank cap 0 < 1`)
	assert.Contains(t, msg, `child "ghost" is not a node`)
}

func TestValidateOriginMustBeRoot(t *testing.T) {
	_, err := NewCatalog(Contents{
		Origin: "o",
		Passives: []PassiveNodeDefinition{
			{ID: "o", RankCap: 1, Children: []string{"a"}},
			{ID: "a", RankCap: 1},
			{ID: "x", RankCap: 1, Children: []string{"o"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has parents")
}

func TestValidateKeystones(t *testing.T) {
	tests := []struct {
		name string
		node PassiveNodeDefinition
		want string
	}{
		{
			name: "unknown kind",
			node: PassiveNodeDefinition{ID: "k", RankCap: 1, Keystone: &Keystone{Kind: "bogus", DamageMultiplier: 1}},
			want: `unknown keystone kind "bogus"`,
		},
		{
			name: "missing multiplier",
			node: PassiveNodeDefinition{ID: "k", RankCap: 1, Keystone: &Keystone{Kind: KeystoneResolute}},
			want: "damage multiplier must be positive",
		},
		{
			name: "negative extra projectiles",
			node: PassiveNodeDefinition{ID: "k", RankCap: 1, Keystone: &Keystone{Kind: KeystoneBarrage, DamageMultiplier: 1, ExtraProjectiles: -2}},
			want: "must not be negative",
		},
		{
			name: "ranked keystone",
			node: PassiveNodeDefinition{ID: "k", RankCap: 3, Keystone: &Keystone{Kind: KeystoneFinalDamage, DamageMultiplier: 2}},
			want: "rank cap 1, got 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(Contents{
				Origin: "o",
				Passives: []PassiveNodeDefinition{
					{ID: "o", RankCap: 1, Children: []string{"k"}},
					tt.node,
				},
			})
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := NewCatalog(Contents{
		Origin: "o",
		Passives: []PassiveNodeDefinition{
			{ID: "o", RankCap: 1, Keystone: &Keystone{Kind: KeystoneBarrage, DamageMultiplier: 0.7, ExtraProjectiles: 2}},
		},
	})
	assert.NoError(t, err)
}

func TestValidateStageDefaultTier(t *testing.T) {
	_, err := NewCatalog(Contents{
		Tiers:  []EnemyTier{{ID: "GRUNT", Health: 10}},
		Stages: []Stage{{ID: "field", DefaultTier: "GHOST"}},
	})
	require.Error(t, err)
	var ref *CatalogReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "GHOST", ref.ID)
	assert.Contains(t, err.Error(), `stage "field"`)

	_, err = NewCatalog(Contents{
		Tiers:  []EnemyTier{{ID: "GRUNT", Health: 10}},
		Stages: []Stage{{ID: "field", DefaultTier: "GRUNT"}},
	})
	assert.NoError(t, err)
}

func TestCatalogReferenceError(t *testing.T) {
	err := error(&CatalogReferenceError{Kind: "tier", ID: "GHOST", Where: "wave 2"})
	assert.Equal(t, `wave 2: unknown tier "GHOST"`, err.Error())
	assert.Equal(t, `unknown ability "X"`, (&CatalogReferenceError{Kind: "ability", ID: "X"}).Error())

	var ref *CatalogReferenceError
	assert.True(t, errors.As(errors.Join(errors.New("other"), err), &ref))
	assert.Equal(t, "GHOST", ref.ID)
}

const sampleCatalog = `
abilities:
  - id: BOLT
    name: Bolt
    base: {damage: 10, fire_interval: 1, projectile_speed: 100, projectile_count: 1, crit_multiplier: 1.5}
    visuals: {color: {r: 255, g: 0, b: 0, a: 255}, radius: 4}
modifiers:
  - {id: MORE, kind: more_damage, multiplier: 1.5}
equippables:
  - id: RING
    slot: ring
    stats:
      damage: {percent: 0.2}
passive_origin: root
passives:
  - {id: root, rank_cap: 1, children: [might]}
  - {id: might, rank_cap: 3, stats: {damage: {flat: 2}}}
tiers:
  - {id: GRUNT, health: 10, speed: 30, damage: 1, reward: 1}
stages:
  - id: field
    default_tier: GRUNT
    spawn_points: [{x: 0, y: 0}]
    waves:
      - groups: [{tier: GRUNT, count: 3, interval: 10}]
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	bolt, ok := cat.Ability("BOLT")
	require.True(t, ok)
	assert.Equal(t, 10.0, bolt.Base.Damage)
	assert.Equal(t, uint8(255), bolt.Visuals.Color.R)

	more, ok := cat.Modifier("MORE")
	require.True(t, ok)
	assert.Equal(t, ModifierMoreDamage, more.Kind)

	ring, ok := cat.Equippable("RING")
	require.True(t, ok)
	assert.Equal(t, StatBonus{Percent: 0.2}, ring.Stats[StatDamage])

	assert.Equal(t, []string{"root"}, cat.Passives.Parents("might"))

	stage, ok := cat.Stage("field")
	require.True(t, ok)
	require.Len(t, stage.Waves, 1)
	assert.Equal(t, 3, stage.Waves[0].Groups[0].Count)
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog([]byte("abilities: [unterminated"))
	assert.ErrorContains(t, err, "unmarshal")

	_, err = ParseCatalog([]byte("modifiers: [{id: X, kind: nope}]"))
	assert.ErrorContains(t, err, "unknown kind")
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	_, ok := cat.Tier("GRUNT")
	assert.True(t, ok)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
