// Package selection narrows scored raid results to the subset a report
// policy cares about. Policies filter, reorder or truncate per-player
// result sets; they never add entries and never mutate their input.
package selection

import (
	"sort"

	"github.com/okian/rexbot/internal/domain/model"
)

// Policy selects how variant results are reduced before reporting.
type Policy int

const (
	// Closer keeps the single result with the highest raw completion,
	// breaking completion ties on expected damage. The default policy.
	Closer Policy = iota
	// Best keeps the single result with the highest completion times
	// expected damage.
	Best
	// Doable keeps only results at 100% completion.
	Doable
	// Full keeps everything.
	Full
)

var policyNames = [...]string{"closer", "best", "doable", "full"}

// String returns the human-readable policy name used in report headers.
func (p Policy) String() string {
	if p < Closer || p > Full {
		return "unknown"
	}
	return policyNames[p]
}

// ParsePolicy picks a policy from command arguments. The first matching
// token wins in the order doable, full, best; absence of all three
// defaults to Closer.
func ParsePolicy(args []string) Policy {
	has := func(token string) bool {
		for _, a := range args {
			if a == token {
				return true
			}
		}
		return false
	}

	switch {
	case has("doable"):
		return Doable
	case has("full"):
		return Full
	case has("best"):
		return Best
	default:
		return Closer
	}
}

// Apply reduces each player's variant results according to the policy.
// The returned slice and its per-player result sets are fresh; the input
// is left untouched.
func Apply(policy Policy, players []model.PlayerRaidResult) []model.PlayerRaidResult {
	out := make([]model.PlayerRaidResult, len(players))
	for i, player := range players {
		out[i] = model.PlayerRaidResult{
			Name:           player.Name,
			VariantResults: reduce(policy, player.VariantResults),
		}
	}
	return out
}

func reduce(policy Policy, results []model.TeamVariantResult) []model.TeamVariantResult {
	kept := make([]model.TeamVariantResult, len(results))
	copy(kept, results)

	switch policy {
	case Full:
		return kept

	case Doable:
		doable := kept[:0]
		for _, r := range kept {
			if r.Total == 100 {
				doable = append(doable, r)
			}
		}
		return doable

	case Best:
		if len(kept) == 0 {
			return kept
		}
		// Stable sort: ties keep catalog declaration order.
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].WeightedScore() > kept[j].WeightedScore()
		})
		return kept[:1]

	case Closer:
		if len(kept) == 0 {
			return kept
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Total > kept[j].Total
		})
		maxTotal := kept[0].Total
		top := kept[:0]
		for _, r := range kept {
			if r.Total == maxTotal {
				top = append(top, r)
			}
		}
		// Damage only breaks ties at the top completion tier.
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].PercentDamage > top[j].PercentDamage
		})
		return top[:1]
	}

	return kept
}
