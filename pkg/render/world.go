package render

import (
	"image/color"

	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const healthBarHeight = 3

// WorldRenderer draws the world: range ring, defender, enemies, projectiles
// and effects.
type WorldRenderer struct {
	ecs *entity.ECS
}

func NewWorldRenderer(ecs *entity.ECS) *WorldRenderer {
	return &WorldRenderer{ecs: ecs}
}

// SetECS points the renderer at a new world after a restart.
func (s *WorldRenderer) SetECS(ecs *entity.ECS) { s.ecs = ecs }

// Draw renders one frame. target is the enemy the defender is aiming at, if any.
func (s *WorldRenderer) Draw(screen *ebiten.Image, target types.EntityID, hasTarget bool) {
	cx, cy := float32(config.DefenderX), float32(config.DefenderY)
	vector.StrokeCircle(screen, cx, cy, float32(config.AttackRange), 1, config.RangeColor, true)

	if hasTarget {
		if pos, ok := s.ecs.Positions[target]; ok {
			vector.StrokeLine(screen, cx, cy, float32(pos.X), float32(pos.Y), 1, config.TargetLineColor, true)
		}
	}

	for id, blast := range s.ecs.Blasts {
		pos, ok := s.ecs.Positions[id]
		if !ok || blast.Duration <= 0 {
			continue
		}
		progress := blast.Timer / blast.Duration
		c := WithAlpha(blast.Color, uint8(200*(1-progress)))
		vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(progress*blast.MaxRadius), 2, c, true)
	}

	// Sorted ids keep overlapping sprites from flickering between frames.
	for _, id := range s.drawOrder() {
		r := s.ecs.Renderables[id]
		pos, hasPos := s.ecs.Positions[id]
		if !hasPos {
			continue
		}
		x, y := float32(pos.X), float32(pos.Y)
		if r.HasStroke {
			stroke := config.DefenderStroke
			if id != s.ecs.DefenderID {
				stroke = DarkenColor(r.Color)
			}
			vector.DrawFilledCircle(screen, x, y, r.Radius+2, stroke, true)
		}
		clr := r.Color
		if _, flashing := s.ecs.DamageFlashes[id]; flashing {
			clr = config.DamageFlashColor
		}
		vector.DrawFilledCircle(screen, x, y, r.Radius, clr, true)

		if health, ok := s.ecs.Healths[id]; ok && health.Max > 0 && health.Value < health.Max {
			s.drawHealthBar(screen, x, y-r.Radius-6, r.Radius*2, float32(health.Value/health.Max))
		}
	}
}

func (s *WorldRenderer) drawOrder() []types.EntityID {
	ids := make([]types.EntityID, 0, len(s.ecs.Renderables))
	// Defender first, then enemies, then projectiles.
	if _, ok := s.ecs.Renderables[s.ecs.DefenderID]; ok {
		ids = append(ids, s.ecs.DefenderID)
	}
	for _, id := range s.ecs.EnemyIDs() {
		if _, ok := s.ecs.Renderables[id]; ok {
			ids = append(ids, id)
		}
	}
	for _, id := range s.ecs.ProjectileIDs() {
		if _, ok := s.ecs.Renderables[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *WorldRenderer) drawHealthBar(screen *ebiten.Image, cx, top, width, frac float32) {
	frac = max(0, min(frac, 1))
	left := cx - width/2
	vector.DrawFilledRect(screen, left, top, width, healthBarHeight, config.HealthBackColor, false)
	vector.DrawFilledRect(screen, left, top, width*frac, healthBarHeight, healthColor(frac), false)
}

func healthColor(frac float32) color.RGBA {
	if frac < 0.3 {
		return config.BossTextColor
	}
	return config.HealthBarColor
}
