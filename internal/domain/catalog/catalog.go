// Package catalog loads and validates the declarative raid catalog and
// resolves member requirements to canonical unit ids.
//
// The catalog document is read fresh on every raids invocation so edits
// take effect immediately; entities are never written after load.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/rexbot/internal/domain/model"
)

// UnitResolver maps a human-entered unit name or acronym to a canonical
// unit. Implemented by the provider adapter.
type UnitResolver interface {
	FindUnit(ctx context.Context, nameOrAcronym string) (model.UnitInfo, error)
}

// MemberKey addresses one member slot inside the catalog.
type MemberKey struct {
	Raid    string
	Team    string
	Variant string
	Slot    int // zero-based member position
}

// MemberIndex maps catalog member slots to canonical unit base ids.
// Built once per invocation; the scorer consults it instead of mutating
// catalog entities.
type MemberIndex map[MemberKey]string

// Load reads and validates a raid catalog document.
func Load(path string) ([]model.Raid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogRead, err)
	}
	return Parse(data)
}

// Parse decodes and validates a raid catalog document.
func Parse(data []byte) ([]model.Raid, error) {
	var raids []model.Raid
	if err := json.Unmarshal(data, &raids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogParse, err)
	}
	if err := Validate(raids); err != nil {
		return nil, err
	}
	return raids, nil
}

// Validate checks catalog integrity. Notably it rejects member
// requirements whose gear+relic+zetas sum to zero, which would divide by
// zero in the achievement formula.
func Validate(raids []model.Raid) error {
	for _, raid := range raids {
		if raid.Name == "" {
			return fmt.Errorf("%w: raid with empty name", ErrInvalidCatalog)
		}
		for _, team := range raid.Teams {
			if team.Name == "" {
				return fmt.Errorf("%w: raid %q: team with empty name", ErrInvalidCatalog, raid.Name)
			}
			for _, variant := range team.Variants {
				if err := validateVariant(raid.Name, team.Name, variant); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateVariant(raid, team string, variant model.TeamVariant) error {
	at := fmt.Sprintf("raid %q, team %q, variant %q", raid, team, variant.Name)

	switch {
	case variant.Name == "":
		return fmt.Errorf("%w: raid %q, team %q: variant with empty name", ErrInvalidCatalog, raid, team)
	case len(variant.Members) == 0:
		return fmt.Errorf("%w: %s: no members", ErrInvalidCatalog, at)
	case len(variant.Members) > model.TeamSlots:
		return fmt.Errorf("%w: %s: %d members exceeds the %d team slots",
			ErrInvalidCatalog, at, len(variant.Members), model.TeamSlots)
	case variant.PercentDamage < 0 || variant.PercentDamage > 100:
		return fmt.Errorf("%w: %s: percentDamage %v outside 0-100", ErrInvalidCatalog, at, variant.PercentDamage)
	}

	for _, member := range variant.Members {
		if member.Name == "" {
			return fmt.Errorf("%w: %s: member with empty name", ErrInvalidCatalog, at)
		}
		if member.RequiredProgress() == 0 {
			return fmt.Errorf("%w: %s: member %q requires gear+relic+zetas > 0",
				ErrZeroRequirement, at, member.Name)
		}
	}
	return nil
}

// ResolveMembers resolves every member requirement to a canonical unit
// id via the resolver, one lookup per distinct name. An unresolvable
// name is a hard error for the invocation; nothing is silently skipped.
func ResolveMembers(ctx context.Context, resolver UnitResolver, raids []model.Raid) (MemberIndex, error) {
	index := make(MemberIndex)
	byName := make(map[string]string)

	for _, raid := range raids {
		for _, team := range raid.Teams {
			for _, variant := range team.Variants {
				for slot, member := range variant.Members {
					baseID, ok := byName[member.Name]
					if !ok {
						unit, err := resolver.FindUnit(ctx, member.Name)
						if err != nil {
							return nil, fmt.Errorf("%w: %q (raid %q, team %q, variant %q): %v",
								ErrUnresolvableUnit, member.Name, raid.Name, team.Name, variant.Name, err)
						}
						baseID = unit.BaseID
						byName[member.Name] = baseID
					}
					index[MemberKey{Raid: raid.Name, Team: team.Name, Variant: variant.Name, Slot: slot}] = baseID
				}
			}
		}
	}
	return index, nil
}
