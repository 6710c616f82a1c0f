// Package model contains domain models passed between layers.
package model

// TeamSlots is the fixed team size the scoring formula and the report
// layout assume. Variants declare between 1 and TeamSlots members; the
// achievement total is always scaled against TeamSlots, matching the
// established report format.
const TeamSlots = 5

// Raid is a catalog template: a named raid with the teams worth fielding
// against it. Catalog entities are read-only after load; scoring output
// lives in PlayerRaidResult, never on the raid itself.
type Raid struct {
	Name  string `json:"name"`
	Teams []Team `json:"teams"`
}

// Team groups alternative compositions addressing the same raid objective.
type Team struct {
	Name     string        `json:"name"`
	Variants []TeamVariant `json:"variants"`
}

// TeamVariant is one alternative unit composition for a team.
// PercentDamage is the catalog-declared damage share when every member
// meets its requirement; it is a weighting factor, never recomputed.
type TeamVariant struct {
	Name          string       `json:"name"`
	Members       []TeamMember `json:"members"`
	PercentDamage float64      `json:"percentDamage"`
}

// TeamMember is a per-slot minimum requirement: gear tier, relic tier
// (0 when not applicable) and count of zeta upgrades.
type TeamMember struct {
	Name  string `json:"name"`
	Gear  int    `json:"gear"`
	Relic int    `json:"relic"`
	Zetas int    `json:"zetas"`
}

// RequiredProgress sums the three requirement fields as equivalent
// progress units. A zero sum is a catalog configuration error and is
// rejected at validation time.
func (m TeamMember) RequiredProgress() int {
	return m.Gear + m.Relic + m.Zetas
}
