package model

// PlayerRaidResult holds one player's achievement results for a raid.
// Computed fresh per invocation and discarded after rendering.
type PlayerRaidResult struct {
	Name           string
	VariantResults []TeamVariantResult
}

// TeamVariantResult is one player's achievement for a (team, variant)
// pair. MemberDones is index-aligned with the variant's members and each
// value is a completion percentage capped at 100.
type TeamVariantResult struct {
	Team          string
	Variant       string
	MemberDones   []int
	Total         int
	PercentDamage float64
}

// WeightedScore combines completion confidence with the expected damage
// payoff; the BEST selection policy ranks on it.
func (r TeamVariantResult) WeightedScore() float64 {
	return float64(r.Total) * r.PercentDamage / 100
}
