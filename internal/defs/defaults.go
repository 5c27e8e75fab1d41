package defs

import "image/color"

// Default returns the built-in catalog. It panics if the literals below are
// inconsistent, which is a programming error caught by the package tests.
func Default() *Catalog {
	cat, err := NewCatalog(DefaultContents())
	if err != nil {
		panic("defs: built-in catalog is invalid: " + err.Error())
	}
	return cat
}

// DefaultContents returns the built-in definition lists.
func DefaultContents() Contents {
	return Contents{
		Abilities:   defaultAbilities(),
		Modifiers:   defaultModifiers(),
		Equippables: defaultEquippables(),
		Origin:      "origin",
		Passives:    defaultPassives(),
		Tiers:       defaultTiers(),
		Bosses:      defaultBosses(),
		Stages:      []Stage{defaultStage()},
	}
}

func defaultAbilities() []AbilityDefinition {
	return []AbilityDefinition{
		{
			ID:      "ABILITY_FIREBALL",
			Name:    "Fireball",
			Base:    BaseStats{Damage: 24, FireInterval: 1.0, ProjectileSpeed: 260, Radius: 28, ProjectileCount: 1, CritChance: 0.05, CritMultiplier: 1.5},
			Visuals: Visuals{Color: color.RGBA{255, 120, 40, 255}, Radius: 5},
		},
		{
			ID:      "ABILITY_SPLIT_ARROW",
			Name:    "Split Arrow",
			Base:    BaseStats{Damage: 9, FireInterval: 0.6, ProjectileSpeed: 420, Radius: 0, ProjectileCount: 3, CritChance: 0.08, CritMultiplier: 1.5},
			Visuals: Visuals{Color: color.RGBA{230, 230, 140, 255}, Radius: 3},
		},
		{
			ID:      "ABILITY_SPARK",
			Name:    "Spark",
			Base:    BaseStats{Damage: 12, FireInterval: 0.8, ProjectileSpeed: 340, Radius: 0, ProjectileCount: 1, CritChance: 0.06, CritMultiplier: 1.5},
			Visuals: Visuals{Color: color.RGBA{120, 180, 255, 255}, Radius: 4},
		},
		{
			ID:      "ABILITY_FROST_NOVA",
			Name:    "Frost Nova",
			Base:    BaseStats{Damage: 15, FireInterval: 1.6, ProjectileSpeed: 200, Radius: 60, ProjectileCount: 1, CritChance: 0.05, CritMultiplier: 1.5},
			Visuals: Visuals{Color: color.RGBA{170, 240, 255, 255}, Radius: 6},
		},
	}
}

func defaultModifiers() []ModifierDefinition {
	return []ModifierDefinition{
		{ID: "SUPPORT_ADDED_FIRE", Name: "Added Fire", Kind: ModifierMoreDamage, Multiplier: 1.25},
		{ID: "SUPPORT_CONCENTRATED", Name: "Concentrated Effect", Kind: ModifierMoreDamage, Multiplier: 1.4},
		{ID: "SUPPORT_MULTISHOT", Name: "Multishot", Kind: ModifierAdditiveCount, Count: 2},
		{ID: "SUPPORT_PIERCE", Name: "Pierce", Kind: ModifierPierce, Count: 2},
		{ID: "SUPPORT_CHAIN", Name: "Chain", Kind: ModifierChain, Count: 2},
		{ID: "SUPPORT_FASTER_ATTACKS", Name: "Faster Attacks", Kind: ModifierSpeed, Multiplier: 1.3, ProjectileSpeed: 0.2},
	}
}

func defaultEquippables() []EquippableDefinition {
	return []EquippableDefinition{
		{ID: "RING_RUBY", Name: "Ruby Ring", Slot: SlotRing, Stats: StatMap{StatDamage: {Percent: 0.15}}},
		{ID: "RING_SAPPHIRE", Name: "Sapphire Ring", Slot: SlotRing, Stats: StatMap{StatFireInterval: {Percent: -0.1}}},
		{ID: "RING_THORN", Name: "Thornbinder", Slot: SlotRing, Stats: StatMap{StatPierce: {Flat: 1}, StatDamage: {Flat: 3}}},
		{ID: "AMULET_JADE", Name: "Jade Amulet", Slot: SlotAmulet, Stats: StatMap{StatCritChance: {Flat: 0.05}, StatCritMultiplier: {Flat: 0.3}}},
		{ID: "AMULET_STORM", Name: "Stormcaller", Slot: SlotAmulet, Stats: StatMap{StatChain: {Flat: 1}, StatProjectileSpeed: {Percent: 0.25}}},
	}
}

func defaultPassives() []PassiveNodeDefinition {
	return []PassiveNodeDefinition{
		{ID: "origin", Name: "Origin", RankCap: 1, Children: []string{"might", "haste", "precision"}},
		{ID: "might", Name: "Might", RankCap: 5, Stats: StatMap{StatDamage: {Percent: 0.06}}, Children: []string{"heavy_shot", "volley"}},
		{ID: "haste", Name: "Haste", RankCap: 5, Stats: StatMap{StatFireInterval: {Percent: -0.04}}, Children: []string{"volley", "fleet"}},
		{ID: "precision", Name: "Precision", RankCap: 3, Stats: StatMap{StatCritChance: {Flat: 0.03}}, Children: []string{"deadeye"}},
		{ID: "heavy_shot", Name: "Heavy Shot", RankCap: 3, Stats: StatMap{StatDamage: {Flat: 4}, StatAreaRadius: {Percent: 0.1}}, Children: []string{"blood_pact", "unwavering"}},
		{ID: "volley", Name: "Volley", RankCap: 1, Stats: StatMap{StatProjectileCount: {Flat: 1}}, Children: []string{"barrage"}},
		{ID: "fleet", Name: "Fleet", RankCap: 3, Stats: StatMap{StatProjectileSpeed: {Percent: 0.1}}},
		{ID: "deadeye", Name: "Deadeye", RankCap: 2, Stats: StatMap{StatCritMultiplier: {Flat: 0.25}}},
		{
			ID: "blood_pact", Name: "Blood Pact", RankCap: 1,
			Keystone: &Keystone{Kind: KeystoneFinalDamage, DamageMultiplier: 2, SelfDamageOnHit: 1},
		},
		{
			ID: "unwavering", Name: "Unwavering", RankCap: 1,
			Keystone: &Keystone{Kind: KeystoneResolute, DamageMultiplier: 1.3},
		},
		{
			ID: "barrage", Name: "Barrage", RankCap: 1,
			Keystone: &Keystone{Kind: KeystoneBarrage, DamageMultiplier: 0.7, ExtraProjectiles: 2},
		},
	}
}

func defaultTiers() []EnemyTier {
	return []EnemyTier{
		{ID: "NORMAL", Name: "Husk", Health: 40, Speed: 40, Damage: 5, Reward: 1, Visuals: Visuals{Color: color.RGBA{200, 200, 200, 255}, Radius: 8}},
		{ID: "FAST", Name: "Skitter", Health: 25, Speed: 75, Damage: 3, Reward: 1, Visuals: Visuals{Color: color.RGBA{240, 200, 60, 255}, Radius: 6}},
		{ID: "TOUGH", Name: "Brute", Health: 140, Speed: 28, Damage: 12, Reward: 3, Visuals: Visuals{Color: color.RGBA{160, 90, 60, 255}, Radius: 11}},
		{ID: "ELITE", Name: "Warden", Health: 300, Speed: 34, Damage: 20, Reward: 6, Visuals: Visuals{Color: color.RGBA{180, 60, 220, 255}, Radius: 13}},
	}
}

func defaultBosses() []BossTemplate {
	return []BossTemplate{
		{
			ID: "BOSS_TWINS", Name: "The Twins", Interval: 45,
			Entities: []BossEntity{
				{Name: "Vael", Tier: "ELITE", HealthMultiplier: 4},
				{Name: "Vesk", Tier: "ELITE", HealthMultiplier: 4},
			},
		},
		{
			ID: "BOSS_COURT", Name: "The Ashen Court", Interval: 60,
			Entities: []BossEntity{
				{Name: "Magistrate", Tier: "ELITE", HealthMultiplier: 8},
				{Name: "Left Hand", Tier: "TOUGH", HealthMultiplier: 5},
				{Name: "Right Hand", Tier: "TOUGH", HealthMultiplier: 5},
			},
		},
	}
}

func defaultStage() Stage {
	mixed := []TierChance{{Tier: "NORMAL", Chance: 0.6}, {Tier: "FAST", Chance: 0.3}, {Tier: "TOUGH", Chance: 0.1}}
	heavy := []TierChance{{Tier: "FAST", Chance: 0.4}, {Tier: "TOUGH", Chance: 0.45}, {Tier: "ELITE", Chance: 0.15}}
	return Stage{
		ID:          "meadow",
		Name:        "Ashen Meadow",
		DefaultTier: "NORMAL",
		WaveBreak:   180,
		SpawnPoints: []Point{{X: 40, Y: 40}, {X: 1160, Y: 40}, {X: 40, Y: 860}, {X: 1160, Y: 860}},
		BossWaves:   map[int]string{4: "BOSS_TWINS", 9: "BOSS_COURT"},
		Waves: []WaveDefinition{
			{Groups: []SpawnGroup{{Tier: "NORMAL", Count: 5, Interval: 48, SpawnPoint: -1}}},
			{Groups: []SpawnGroup{{Tier: "NORMAL", Count: 8, Interval: 40, SpawnPoint: -1}}},
			{GroupDelay: 90, Groups: []SpawnGroup{
				{Tier: "NORMAL", Count: 6, Interval: 36, SpawnPoint: 0},
				{Tier: "FAST", Count: 6, Interval: 24, SpawnPoint: 1},
			}},
			{Groups: []SpawnGroup{{Pool: mixed, Count: 12, Interval: 30, SpawnPoint: -1}}},
			{},
			{Groups: []SpawnGroup{{Tier: "TOUGH", Count: 6, Interval: 60, SpawnPoint: -1}}},
			{GroupDelay: 60, Groups: []SpawnGroup{
				{Pool: mixed, Count: 14, Interval: 24, SpawnPoint: -1},
				{Tier: "TOUGH", Count: 4, Interval: 48, SpawnPoint: 2},
			}},
			{Groups: []SpawnGroup{{Tier: "FAST", Count: 20, Interval: 15, SpawnPoint: -1}}},
			{GroupDelay: 60, Groups: []SpawnGroup{
				{Pool: heavy, Count: 16, Interval: 30, SpawnPoint: -1},
				{Boss: "BOSS_TWINS", SpawnPoint: 3},
			}},
			{},
		},
	}
}
