package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/rexbot/internal/domain/model"
)

// InMemoryProvider is a RosterProvider and UnitResolver backed by maps,
// for tests and local development.
type InMemoryProvider struct {
	mu      sync.RWMutex
	players map[string]model.PlayerRosterEntry
	guilds  map[string]inMemoryGuild
	units   map[string]model.UnitInfo
}

type inMemoryGuild struct {
	name  string
	codes []string
}

// NewInMemoryProvider creates an empty in-memory provider.
func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{
		players: make(map[string]model.PlayerRosterEntry),
		guilds:  make(map[string]inMemoryGuild),
		units:   make(map[string]model.UnitInfo),
	}
}

// AddPlayer registers a player roster under its ally code.
func (p *InMemoryProvider) AddPlayer(entry model.PlayerRosterEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.players[NormalizeAllyCode(entry.AllyCode)] = entry
}

// AddGuild registers a guild roster; every member ally code maps to it.
func (p *InMemoryProvider) AddGuild(name string, allyCodes []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	guild := inMemoryGuild{name: name, codes: allyCodes}
	for _, code := range allyCodes {
		p.guilds[NormalizeAllyCode(code)] = guild
	}
}

// AddUnit registers a canonical unit under one or more lookup names.
func (p *InMemoryProvider) AddUnit(info model.UnitInfo, names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range names {
		p.units[strings.ToLower(name)] = info
	}
}

// Players implements RosterProvider.
func (p *InMemoryProvider) Players(_ context.Context, allyCodes []string) ([]model.PlayerRosterEntry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	players := make([]model.PlayerRosterEntry, 0, len(allyCodes))
	for _, code := range allyCodes {
		entry, ok := p.players[NormalizeAllyCode(code)]
		if !ok {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, code)
		}
		players = append(players, entry)
	}
	return players, nil
}

// GuildAllyCodes implements RosterProvider.
func (p *InMemoryProvider) GuildAllyCodes(_ context.Context, allyCode string) (string, []string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	guild, ok := p.guilds[NormalizeAllyCode(allyCode)]
	if !ok {
		return "", nil, fmt.Errorf("%w: guild for %s", ErrNotFound, allyCode)
	}
	return guild.name, guild.codes, nil
}

// FindUnit implements UnitResolver.
func (p *InMemoryProvider) FindUnit(_ context.Context, nameOrAcronym string) (model.UnitInfo, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	info, ok := p.units[strings.ToLower(strings.TrimSpace(nameOrAcronym))]
	if !ok {
		return model.UnitInfo{}, fmt.Errorf("%w: unit %s", ErrNotFound, nameOrAcronym)
	}
	return info, nil
}
