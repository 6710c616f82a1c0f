package model

// MaxGearTier is the last ordinary gear tier; relic progression only
// exists beyond it.
const MaxGearTier = 13

// RelicTierOffset calibrates provider relic tiers to progress units:
// the provider reports tier 2 for a unit that has just unlocked relics,
// so relic tier 3 contributes 1 progress unit.
const RelicTierOffset = 2

// PlayerRosterEntry is one player's owned-unit roster as returned by the
// roster provider.
type PlayerRosterEntry struct {
	Name     string      `json:"name"`
	AllyCode string      `json:"allyCode"`
	Roster   []UnitEntry `json:"roster"`
}

// Unit returns the owned unit with the given base id, or nil when the
// player does not own it. Absence is a valid zero-progress state.
func (p PlayerRosterEntry) Unit(baseID string) *UnitEntry {
	for i := range p.Roster {
		if p.Roster[i].DefID == baseID {
			return &p.Roster[i]
		}
	}
	return nil
}

// UnitEntry is one owned unit with its progression state. Mod data is
// part of the shared provider shape but unused by the raids core.
type UnitEntry struct {
	DefID  string     `json:"defId"`
	Gear   int        `json:"gear"`
	Relic  RelicState `json:"relic"`
	Skills []Skill    `json:"skills"`
	Mods   []Mod      `json:"mods"`
}

// RelicState carries the unit's current relic tier, meaningful only at
// MaxGearTier.
type RelicState struct {
	CurrentTier int `json:"currentTier"`
}

// Skill is one unit ability with its upgrade state.
type Skill struct {
	ID     string `json:"id"`
	Tier   int    `json:"tier"`
	Tiers  int    `json:"tiers"`
	IsZeta bool   `json:"isZeta"`
}

// Mod is an equipped mod with its stats (unused by scoring, present in
// the provider payload).
type Mod struct {
	Slot           int    `json:"slot"`
	Set            int    `json:"set"`
	Level          int    `json:"level"`
	PrimaryStat    Stat   `json:"primaryStat"`
	SecondaryStats []Stat `json:"secondaryStat"`
}

// Stat is a single mod stat value.
type Stat struct {
	UnitStat int     `json:"unitStat"`
	Value    float64 `json:"value"`
}

// ZetaCount returns the number of zeta upgrades the unit has fully
// learned: zeta-capable skills upgraded to their final tier.
func (u UnitEntry) ZetaCount() int {
	count := 0
	for _, s := range u.Skills {
		if s.IsZeta && s.Tiers > 0 && s.Tier >= s.Tiers {
			count++
		}
	}
	return count
}

// ProgressUnits converts the unit's current progression into the scalar
// the achievement formula consumes: gear tier, plus relic tier beyond
// the calibration offset once ordinary gear is maxed, plus learned zetas.
func (u UnitEntry) ProgressUnits() int {
	relicBonus := 0
	if u.Gear == MaxGearTier {
		relicBonus = u.Relic.CurrentTier - RelicTierOffset
	}
	return u.Gear + relicBonus + u.ZetaCount()
}

// UnitInfo is the unit resolver's view of a canonical unit.
type UnitInfo struct {
	BaseID     string `json:"baseId"`
	NameKey    string `json:"nameKey"`
	DescKey    string `json:"descKey"`
	CombatType int    `json:"combatType"`
}
