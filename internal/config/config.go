package config

import "image/color"

const (
	ScreenWidth    = 1200
	ScreenHeight   = 900
	TicksPerSecond = 60
	MaxDeltaTime   = 0.06

	DefenderX      = ScreenWidth / 2
	DefenderY      = ScreenHeight / 2
	DefenderRadius = 18.0
	DefenderHealth = 200.0
	AttackRange    = 320.0

	ProjectileHitRadius = 12.0 // pixels
	ChainSearchRadius   = 160.0

	DamageFlashDuration = 0.12 // seconds

	IndicatorOffsetX = 30
	TextLineHeight   = 16
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	DefenderColor    = color.RGBA{50, 205, 50, 255}
	DefenderStroke   = color.RGBA{255, 255, 255, 255}
	RangeColor       = color.RGBA{70, 100, 120, 90}
	TargetLineColor  = color.RGBA{255, 255, 0, 128}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	WaveStateColor   = color.RGBA{220, 60, 60, 220}
	BreakStateColor  = color.RGBA{70, 130, 180, 220}
	BossTextColor    = color.RGBA{255, 80, 80, 255}
	DamageFlashColor = color.RGBA{255, 255, 255, 255}
	HealthBarColor   = color.RGBA{60, 200, 90, 255}
	HealthBackColor  = color.RGBA{80, 30, 30, 255}
)
