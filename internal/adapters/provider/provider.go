// Package provider gives the bot read access to the external game data
// services: player/guild rosters and canonical unit lookup.
package provider

import (
	"context"
	"regexp"
	"strings"

	"github.com/okian/rexbot/internal/domain/model"
)

// RosterProvider supplies player rosters for a set of ally codes.
type RosterProvider interface {
	// Players returns one roster entry per ally code, preserving input order.
	Players(ctx context.Context, allyCodes []string) ([]model.PlayerRosterEntry, error)

	// GuildAllyCodes returns the guild name and member ally codes for
	// the guild the given ally code belongs to.
	GuildAllyCodes(ctx context.Context, allyCode string) (string, []string, error)
}

// UnitResolver maps a human-entered unit name or acronym to a canonical unit.
type UnitResolver interface {
	FindUnit(ctx context.Context, nameOrAcronym string) (model.UnitInfo, error)
}

var (
	simpleAllyCode = regexp.MustCompile(`^\d{9}$`)
	dashedAllyCode = regexp.MustCompile(`^\d{3}-\d{3}-\d{3}$`)
)

// IsAllyCode reports whether s is a well-formed ally code: nine digits,
// plain (XXXXXXXXX) or dash separated (XXX-XXX-XXX).
func IsAllyCode(s string) bool {
	trimmed := strings.TrimSpace(s)
	return simpleAllyCode.MatchString(trimmed) || dashedAllyCode.MatchString(trimmed)
}

// NormalizeAllyCode returns the plain nine-digit form of an ally code.
func NormalizeAllyCode(s string) string {
	trimmed := strings.TrimSpace(s)
	if dashedAllyCode.MatchString(trimmed) {
		return strings.ReplaceAll(trimmed, "-", "")
	}
	return trimmed
}
