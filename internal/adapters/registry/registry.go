// Package registry persists the mapping between chat identities and
// game accounts: users own one or more ally codes plus a GAC VIP unit
// list, guilds own a TW VIP unit list. State is saved to JSON files on
// every mutation.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/okian/rexbot/pkg/logger"
	"github.com/okian/rexbot/pkg/metrics"
)

// User is one registered chat user.
type User struct {
	ID          string   `json:"id"`
	AllyCodes   []string `json:"allyCodes"`
	VIPUnitsGAC []string `json:"vipUnitsGAC"`
}

// Guild is one registered chat guild.
type Guild struct {
	ID         string   `json:"id"`
	VIPUnitsTW []string `json:"vipUnitsTW"`
}

// Store provides read/write access to the registry.
type Store interface {
	// RegisterUser binds an ally code to a chat user. An ally code
	// already owned by another user is rejected.
	RegisterUser(ctx context.Context, chatID, allyCode string) error
	// UnregisterUser removes an ally code binding. With several codes
	// registered the code must be named; removing the last code drops
	// the user.
	UnregisterUser(ctx context.Context, chatID, allyCode string) error

	User(ctx context.Context, chatID string) (User, error)
	Users(ctx context.Context) []User
	UserCount(ctx context.Context) int
	// AllyCodes returns the codes bound to a chat user, empty when unknown.
	AllyCodes(ctx context.Context, chatID string) []string
	// OwnerOf returns the chat id an ally code is bound to.
	OwnerOf(ctx context.Context, allyCode string) (string, bool)

	RegisterGuild(ctx context.Context, guildID string) error
	UnregisterGuild(ctx context.Context, guildID string) error
	Guild(ctx context.Context, guildID string) (Guild, error)
	Guilds(ctx context.Context) []Guild
	GuildCount(ctx context.Context) int

	// VIP unit lists for intel gathering.
	AddVIPUnitGAC(ctx context.Context, chatID, unit string) error
	RemoveVIPUnitGAC(ctx context.Context, chatID, unit string) error
	AddVIPUnitTW(ctx context.Context, guildID, unit string) error
	RemoveVIPUnitTW(ctx context.Context, guildID, unit string) error
}

// FileRegistry implements Store backed by two JSON documents.
type FileRegistry struct {
	mu sync.RWMutex

	usersPath  string
	guildsPath string

	users  map[string]*User
	guilds map[string]*Guild

	logger logger.Logger
}

// NewFileRegistry loads (or initializes) a registry from the given
// files. Missing files are treated as an empty registry, not an error.
func NewFileRegistry(usersPath, guildsPath string, opts ...Option) (*FileRegistry, error) {
	r := &FileRegistry{
		usersPath:  usersPath,
		guildsPath: guildsPath,
		users:      make(map[string]*User),
		guilds:     make(map[string]*Guild),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.Get().Named("registry")
	}

	if err := r.loadUsers(); err != nil {
		return nil, err
	}
	if err := r.loadGuilds(); err != nil {
		return nil, err
	}

	metrics.UpdateRegisteredUsers(len(r.users))
	metrics.UpdateRegisteredGuilds(len(r.guilds))

	return r, nil
}

func (r *FileRegistry) loadUsers() error {
	data, err := os.ReadFile(r.usersPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadRegistry, err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("%w: %v", ErrLoadRegistry, err)
	}
	for i := range users {
		r.users[users[i].ID] = &users[i]
	}
	return nil
}

func (r *FileRegistry) loadGuilds() error {
	data, err := os.ReadFile(r.guildsPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadRegistry, err)
	}

	var guilds []Guild
	if err := json.Unmarshal(data, &guilds); err != nil {
		return fmt.Errorf("%w: %v", ErrLoadRegistry, err)
	}
	for i := range guilds {
		r.guilds[guilds[i].ID] = &guilds[i]
	}
	return nil
}

// saveUsers persists the user map; callers hold the write lock.
func (r *FileRegistry) saveUsers(ctx context.Context) error {
	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveRegistry, err)
	}
	if err := os.WriteFile(r.usersPath, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveRegistry, err)
	}

	metrics.UpdateRegisteredUsers(len(r.users))
	r.logger.Debug(ctx, "saved users", logger.Int("count", len(r.users)))
	return nil
}

// saveGuilds persists the guild map; callers hold the write lock.
func (r *FileRegistry) saveGuilds(ctx context.Context) error {
	guilds := make([]Guild, 0, len(r.guilds))
	for _, g := range r.guilds {
		guilds = append(guilds, *g)
	}

	data, err := json.Marshal(guilds)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveRegistry, err)
	}
	if err := os.WriteFile(r.guildsPath, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveRegistry, err)
	}

	metrics.UpdateRegisteredGuilds(len(r.guilds))
	r.logger.Debug(ctx, "saved guilds", logger.Int("count", len(r.guilds)))
	return nil
}

// RegisterUser binds an ally code to a chat user.
func (r *FileRegistry) RegisterUser(ctx context.Context, chatID, allyCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner := r.ownerOfLocked(allyCode); owner != "" {
		return fmt.Errorf("%w: ally code %s belongs to %s", ErrAllyCodeTaken, allyCode, owner)
	}

	if user, ok := r.users[chatID]; ok {
		user.AllyCodes = append(user.AllyCodes, allyCode)
	} else {
		r.users[chatID] = &User{ID: chatID, AllyCodes: []string{allyCode}, VIPUnitsGAC: []string{}}
	}

	r.logger.Info(ctx, "registered user", logger.String("chatID", chatID), logger.String("allyCode", allyCode))
	return r.saveUsers(ctx)
}

// UnregisterUser removes an ally code binding.
func (r *FileRegistry) UnregisterUser(ctx context.Context, chatID, allyCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[chatID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, chatID)
	}

	switch {
	case len(user.AllyCodes) == 1:
		delete(r.users, chatID)
	case allyCode == "":
		return fmt.Errorf("%w: user %s has several ally codes", ErrAmbiguousAllyCode, chatID)
	default:
		idx := -1
		for i, code := range user.AllyCodes {
			if code == allyCode {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("%w: %s for user %s", ErrUnknownAllyCode, allyCode, chatID)
		}
		user.AllyCodes = append(user.AllyCodes[:idx], user.AllyCodes[idx+1:]...)
	}

	r.logger.Info(ctx, "unregistered user", logger.String("chatID", chatID), logger.String("allyCode", allyCode))
	return r.saveUsers(ctx)
}

// User returns a registered user by chat id.
func (r *FileRegistry) User(ctx context.Context, chatID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[chatID]
	if !ok {
		return User{}, fmt.Errorf("%w: %s", ErrUnknownUser, chatID)
	}
	return *user, nil
}

// Users returns all registered users.
func (r *FileRegistry) Users(ctx context.Context) []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users
}

// UserCount returns the number of registered users.
func (r *FileRegistry) UserCount(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// AllyCodes returns the ally codes bound to a chat user.
func (r *FileRegistry) AllyCodes(ctx context.Context, chatID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[chatID]
	if !ok {
		return nil
	}
	codes := make([]string, len(user.AllyCodes))
	copy(codes, user.AllyCodes)
	return codes
}

// OwnerOf returns the chat id an ally code is bound to.
func (r *FileRegistry) OwnerOf(ctx context.Context, allyCode string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner := r.ownerOfLocked(allyCode)
	return owner, owner != ""
}

func (r *FileRegistry) ownerOfLocked(allyCode string) string {
	for _, user := range r.users {
		for _, code := range user.AllyCodes {
			if code == allyCode {
				return user.ID
			}
		}
	}
	return ""
}

// RegisterGuild adds a guild to the registry.
func (r *FileRegistry) RegisterGuild(ctx context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.guilds[guildID]; ok {
		return fmt.Errorf("%w: %s", ErrGuildExists, guildID)
	}
	r.guilds[guildID] = &Guild{ID: guildID, VIPUnitsTW: []string{}}

	r.logger.Info(ctx, "registered guild", logger.String("guildID", guildID))
	return r.saveGuilds(ctx)
}

// UnregisterGuild removes a guild from the registry.
func (r *FileRegistry) UnregisterGuild(ctx context.Context, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.guilds[guildID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGuild, guildID)
	}
	delete(r.guilds, guildID)

	r.logger.Info(ctx, "unregistered guild", logger.String("guildID", guildID))
	return r.saveGuilds(ctx)
}

// Guild returns a registered guild by id.
func (r *FileRegistry) Guild(ctx context.Context, guildID string) (Guild, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guild, ok := r.guilds[guildID]
	if !ok {
		return Guild{}, fmt.Errorf("%w: %s", ErrUnknownGuild, guildID)
	}
	return *guild, nil
}

// Guilds returns all registered guilds.
func (r *FileRegistry) Guilds(ctx context.Context) []Guild {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guilds := make([]Guild, 0, len(r.guilds))
	for _, g := range r.guilds {
		guilds = append(guilds, *g)
	}
	return guilds
}

// GuildCount returns the number of registered guilds.
func (r *FileRegistry) GuildCount(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.guilds)
}

// AddVIPUnitGAC adds a unit to a user's GAC intel list.
func (r *FileRegistry) AddVIPUnitGAC(ctx context.Context, chatID, unit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[chatID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, chatID)
	}
	for _, u := range user.VIPUnitsGAC {
		if u == unit {
			return nil
		}
	}
	user.VIPUnitsGAC = append(user.VIPUnitsGAC, unit)
	return r.saveUsers(ctx)
}

// RemoveVIPUnitGAC removes a unit from a user's GAC intel list.
func (r *FileRegistry) RemoveVIPUnitGAC(ctx context.Context, chatID, unit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[chatID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, chatID)
	}
	for i, u := range user.VIPUnitsGAC {
		if u == unit {
			user.VIPUnitsGAC = append(user.VIPUnitsGAC[:i], user.VIPUnitsGAC[i+1:]...)
			return r.saveUsers(ctx)
		}
	}
	return fmt.Errorf("%w: unit %s not in GAC list for %s", ErrUnknownUnit, unit, chatID)
}

// AddVIPUnitTW adds a unit to a guild's TW intel list.
func (r *FileRegistry) AddVIPUnitTW(ctx context.Context, guildID, unit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	guild, ok := r.guilds[guildID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGuild, guildID)
	}
	for _, u := range guild.VIPUnitsTW {
		if u == unit {
			return nil
		}
	}
	guild.VIPUnitsTW = append(guild.VIPUnitsTW, unit)
	return r.saveGuilds(ctx)
}

// RemoveVIPUnitTW removes a unit from a guild's TW intel list.
func (r *FileRegistry) RemoveVIPUnitTW(ctx context.Context, guildID, unit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	guild, ok := r.guilds[guildID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGuild, guildID)
	}
	for i, u := range guild.VIPUnitsTW {
		if u == unit {
			guild.VIPUnitsTW = append(guild.VIPUnitsTW[:i], guild.VIPUnitsTW[i+1:]...)
			return r.saveGuilds(ctx)
		}
	}
	return fmt.Errorf("%w: unit %s not in TW list for %s", ErrUnknownUnit, unit, guildID)
}
