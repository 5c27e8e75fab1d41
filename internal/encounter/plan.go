package encounter

import (
	"fmt"

	"go-gem-defense/internal/defs"
)

const fallbackInterval = 60

// PickTier walks the cumulative chance thresholds of pool in declared order and
// returns the first tier whose threshold exceeds u. Thresholds are exclusive
// upper bounds; the last tier catches whatever mass is left.
func PickTier(pool []defs.TierChance, u float64) string {
	if len(pool) == 0 {
		return ""
	}
	cum := 0.0
	for _, c := range pool {
		cum += c.Chance
		if u < cum {
			return c.Tier
		}
	}
	return pool[len(pool)-1].Tier
}

// Plan returns the groups wave index will spawn. Boss overrides replace the
// wave's own groups; broken references are reported and recovered from.
func (s *Scheduler) Plan(index int) ([]Group, []error) {
	if bossID, ok := s.stage.BossWaves[index]; ok {
		g, err := s.bossGroup(bossID, -1, fmt.Sprintf("wave %d boss override", index))
		if err != nil {
			return []Group{g}, []error{err}
		}
		return []Group{g}, nil
	}
	if index < 0 || index >= len(s.stage.Waves) {
		return nil, nil
	}

	var (
		groups []Group
		errs   []error
	)
	for i, sg := range s.stage.Waves[index].Groups {
		where := fmt.Sprintf("wave %d group %d", index, i)
		if sg.Boss != "" {
			g, err := s.bossGroup(sg.Boss, sg.SpawnPoint, where)
			if err != nil {
				errs = append(errs, err)
			}
			groups = append(groups, g)
			continue
		}
		if sg.Count <= 0 {
			continue
		}

		g := Group{
			Count:      sg.Count,
			Interval:   max(sg.Interval, 1),
			SpawnPoint: sg.SpawnPoint,
		}
		if len(sg.Pool) > 0 {
			for _, c := range sg.Pool {
				if _, ok := s.cat.Tier(c.Tier); !ok {
					errs = append(errs, &defs.CatalogReferenceError{Kind: "tier", ID: c.Tier, Where: where + " pool"})
					continue
				}
				g.Pool = append(g.Pool, c)
			}
			if len(g.Pool) == 0 {
				continue
			}
		} else {
			if _, ok := s.cat.Tier(sg.Tier); !ok {
				errs = append(errs, &defs.CatalogReferenceError{Kind: "tier", ID: sg.Tier, Where: where})
				continue
			}
			g.Tier = sg.Tier
		}
		groups = append(groups, g)
	}
	return groups, errs
}

// bossGroup expands a boss template. A missing template falls back to a
// default-tier group so that progression never stalls.
func (s *Scheduler) bossGroup(id string, spawnPoint int, where string) (Group, error) {
	tmpl, ok := s.cat.Boss(id)
	if !ok || len(tmpl.Entities) == 0 {
		return Group{
			Tier:       s.stage.DefaultTier,
			Count:      max(s.stage.FallbackCount, 1),
			Interval:   fallbackInterval,
			SpawnPoint: spawnPoint,
		}, &defs.CatalogReferenceError{Kind: "boss", ID: id, Where: where}
	}

	entities := make([]defs.BossEntity, 0, len(tmpl.Entities))
	for _, e := range tmpl.Entities {
		if _, ok := s.cat.Tier(e.Tier); !ok {
			e.Tier = s.stage.DefaultTier
		}
		if e.HealthMultiplier <= 0 {
			e.HealthMultiplier = 1
		}
		entities = append(entities, e)
	}
	return Group{
		Count:      len(entities),
		Interval:   max(tmpl.Interval, 1),
		SpawnPoint: spawnPoint,
		BossName:   tmpl.Name,
		Bosses:     entities,
	}, nil
}
