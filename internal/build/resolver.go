package build

import (
	"fmt"
	"log/slog"
	"sort"

	"go-gem-defense/internal/defs"
)

// Resolution is the output of one resolve pass: a vector for every socket that
// resolved, plus the reference errors of the sockets that were skipped.
type Resolution struct {
	Revision uint64
	Vectors  []StatVector
	Errors   []error
}

// Vector returns the vector resolved for a socket index.
func (r Resolution) Vector(socket int) (StatVector, bool) {
	for _, v := range r.Vectors {
		if v.Socket == socket {
			return v, true
		}
	}
	return StatVector{}, false
}

// Resolve computes the effective stats of every socketed ability. It is a pure
// function of cat and s: the combination order is base stats, linked supports,
// passive ranks, equipment, keystones, then floors.
func Resolve(cat *defs.Catalog, s *State, floors Floors) Resolution {
	res := Resolution{Revision: s.rev}

	// Global layers are shared by all sockets.
	passives := accumulator{}
	var keystones []defs.Keystone
	for _, id := range s.allocatedNodes() {
		node, ok := cat.Passives.Node(id)
		if !ok {
			res.Errors = append(res.Errors, &defs.CatalogReferenceError{Kind: "passive", ID: id, Where: "resolve"})
			continue
		}
		passives.add(node.Stats, s.ranks[id])
		if node.Keystone != nil {
			keystones = append(keystones, *node.Keystone)
		}
	}

	equipment := accumulator{}
	items := s.Equipped()
	sort.Strings(items)
	for _, id := range items {
		item, ok := cat.Equippable(id)
		if !ok {
			res.Errors = append(res.Errors, &defs.CatalogReferenceError{Kind: "equippable", ID: id, Where: "resolve"})
			continue
		}
		equipment.add(item.Stats, 1)
	}

	for i, sock := range s.sockets {
		if sock.Ability == "" {
			continue
		}
		where := fmt.Sprintf("socket %d", i)
		ability, ok := cat.Ability(sock.Ability)
		if !ok {
			res.Errors = append(res.Errors, &defs.CatalogReferenceError{Kind: "ability", ID: sock.Ability, Where: where})
			continue
		}
		mods, err := lookupModifiers(cat, sock.Links, where)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}

		stats := fromBase(ability.Base)
		for _, m := range mods {
			applyModifier(stats, m)
		}
		passives.applyTo(stats)
		equipment.applyTo(stats)
		self := 0.0
		for _, k := range keystones {
			self += applyKeystone(stats, k)
		}

		v := stats.finish(floors)
		v.Socket = i
		v.Ability = ability.ID
		v.Name = ability.Name
		v.SelfDamageOnHit = self
		res.Vectors = append(res.Vectors, v)
	}
	return res
}

func lookupModifiers(cat *defs.Catalog, links []string, where string) ([]defs.ModifierDefinition, error) {
	mods := make([]defs.ModifierDefinition, 0, len(links))
	for _, id := range links {
		m, ok := cat.Modifier(id)
		if !ok {
			return nil, &defs.CatalogReferenceError{Kind: "modifier", ID: id, Where: where}
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// applyModifier is the combination rule of each support gem kind.
func applyModifier(s statSet, m defs.ModifierDefinition) {
	switch m.Kind {
	case defs.ModifierMoreDamage:
		s[defs.StatDamage] *= m.Multiplier
	case defs.ModifierAdditiveCount:
		s[defs.StatProjectileCount] += float64(m.Count)
	case defs.ModifierPierce:
		s[defs.StatPierce] += float64(m.Count)
	case defs.ModifierChain:
		s[defs.StatChain] += float64(m.Count)
	case defs.ModifierSpeed:
		if m.Multiplier > 0 {
			s[defs.StatFireInterval] /= m.Multiplier
		}
		s[defs.StatProjectileSpeed] *= 1 + m.ProjectileSpeed
	}
}

// applyKeystone runs after every other layer so that trade-offs are measured
// against the fully built stat. It returns the self damage the keystone adds.
func applyKeystone(s statSet, k defs.Keystone) float64 {
	switch k.Kind {
	case defs.KeystoneFinalDamage:
		s[defs.StatDamage] *= k.DamageMultiplier
		return k.SelfDamageOnHit
	case defs.KeystoneResolute:
		s[defs.StatCritChance] = 0
		s[defs.StatDamage] *= k.DamageMultiplier
	case defs.KeystoneBarrage:
		s[defs.StatProjectileCount] += float64(k.ExtraProjectiles)
		s[defs.StatDamage] *= k.DamageMultiplier
	}
	return 0
}

// Resolver caches the resolution of one build for as long as the build's
// revision does not change.
type Resolver struct {
	cat    *defs.Catalog
	floors Floors
	log    *slog.Logger

	cached Resolution
	valid  bool
}

// NewResolver creates a resolver. A nil logger means slog.Default().
func NewResolver(cat *defs.Catalog, floors Floors, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{cat: cat, floors: floors, log: log}
}

// Refresh recomputes the cached resolution if s changed since the last call
// and reports whether it did.
func (r *Resolver) Refresh(s *State) bool {
	if r.valid && r.cached.Revision == s.Revision() {
		return false
	}
	r.cached = Resolve(r.cat, s, r.floors)
	r.valid = true
	for _, err := range r.cached.Errors {
		r.log.Warn("socket skipped during resolution", "error", err)
	}
	r.log.Debug("build resolved", "revision", r.cached.Revision, "vectors", len(r.cached.Vectors))
	return true
}

// Current returns the cached resolution.
func (r *Resolver) Current() Resolution { return r.cached }

// Preview resolves s with m applied, without touching s or the cache.
func (r *Resolver) Preview(s *State, m Mutation) (Resolution, error) {
	c := s.Clone()
	if err := Apply(c, m); err != nil {
		return Resolution{}, err
	}
	return Resolve(r.cat, c, r.floors), nil
}
