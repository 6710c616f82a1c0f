// Package scoring computes raid-team achievement results for players.
//
// The engine is a pure function over an immutable catalog raid, a
// resolved member index and a roster snapshot; it performs no I/O and
// never mutates its inputs.
package scoring

import (
	"fmt"

	"github.com/okian/rexbot/internal/domain/catalog"
	"github.com/okian/rexbot/internal/domain/model"
)

const maxMemberDone = 100

// Engine scores every player against every (team, variant) pair of a raid.
type Engine struct {
	slotCount int
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		slotCount: model.TeamSlots,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Score produces one PlayerRaidResult per roster entry, each holding one
// TeamVariantResult per (team, variant) pair in catalog order.
//
// The aggregate total is deliberately scaled against the fixed slot
// count rather than the variant's member count: a two-member variant at
// full completion totals 40, matching the established report format.
func (e *Engine) Score(raid model.Raid, index catalog.MemberIndex, roster []model.PlayerRosterEntry) ([]model.PlayerRaidResult, error) {
	results := make([]model.PlayerRaidResult, 0, len(roster))

	for _, player := range roster {
		playerResult := model.PlayerRaidResult{
			Name:           player.Name,
			VariantResults: make([]model.TeamVariantResult, 0),
		}

		for _, team := range raid.Teams {
			for _, variant := range team.Variants {
				variantResult, err := e.scoreVariant(raid.Name, team.Name, variant, index, player)
				if err != nil {
					return nil, err
				}
				playerResult.VariantResults = append(playerResult.VariantResults, variantResult)
			}
		}

		results = append(results, playerResult)
	}

	return results, nil
}

func (e *Engine) scoreVariant(raidName, teamName string, variant model.TeamVariant, index catalog.MemberIndex, player model.PlayerRosterEntry) (model.TeamVariantResult, error) {
	memberDones := make([]int, 0, len(variant.Members))
	sum := 0

	for slot, member := range variant.Members {
		key := catalog.MemberKey{Raid: raidName, Team: teamName, Variant: variant.Name, Slot: slot}
		baseID, ok := index[key]
		if !ok {
			return model.TeamVariantResult{}, fmt.Errorf("%w: %q (raid %q, team %q, variant %q, slot %d)",
				ErrMemberNotIndexed, member.Name, raidName, teamName, variant.Name, slot)
		}

		required := member.RequiredProgress()
		if required <= 0 {
			// Guarded again here even though catalog validation rejects it.
			return model.TeamVariantResult{}, fmt.Errorf("%w: %q (raid %q, team %q, variant %q)",
				ErrZeroRequirement, member.Name, raidName, teamName, variant.Name)
		}

		done := 0
		if unit := player.Unit(baseID); unit != nil {
			current := unit.ProgressUnits()
			if current > 0 {
				done = current * maxMemberDone / required
			}
			if done > maxMemberDone {
				done = maxMemberDone
			}
		}

		memberDones = append(memberDones, done)
		sum += done
	}

	return model.TeamVariantResult{
		Team:          teamName,
		Variant:       variant.Name,
		MemberDones:   memberDones,
		Total:         sum / e.slotCount,
		PercentDamage: variant.PercentDamage,
	}, nil
}
