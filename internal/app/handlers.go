package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/rexbot/internal/adapters/provider"
	"github.com/okian/rexbot/internal/domain/catalog"
	"github.com/okian/rexbot/internal/domain/selection"
	"github.com/okian/rexbot/pkg/logger"
	"github.com/okian/rexbot/pkg/metrics"
)

func (s *Service) handleHelp(_ context.Context, _ *invocation) (string, error) {
	p := s.prefix
	return strings.Join([]string{
		"Commands:",
		p + "register <ally code> - bind an ally code to your account",
		p + "unregister [ally code] - remove an ally code binding",
		p + "allycode - show your registered ally codes",
		p + "raids [best|closer|doable|full] [guild] - raid team achievement report",
		p + "vip gac|tw add|remove <unit> - manage the intel watchlists",
		p + "registerguild / " + p + "unregisterguild - manage this guild",
		p + "info - bot status",
	}, "\n"), nil
}

func (s *Service) handleInfo(ctx context.Context, _ *invocation) (string, error) {
	s.mu.RLock()
	uptime := time.Since(s.startedAt).Round(time.Second)
	s.mu.RUnlock()

	return fmt.Sprintf("Up for %s, served %d requests. %d users and %d guilds registered.",
		uptime, s.requests.Load(),
		s.registry.UserCount(ctx), s.registry.GuildCount(ctx)), nil
}

func (s *Service) handleAllyCode(ctx context.Context, inv *invocation) (string, error) {
	codes := s.registry.AllyCodes(ctx, inv.msg.AuthorID)
	if len(codes) == 0 {
		return "", ErrNotRegistered
	}
	return "Your ally codes: " + strings.Join(codes, ", "), nil
}

func (s *Service) handleRegister(ctx context.Context, inv *invocation) (string, error) {
	if len(inv.cmd.Args) == 0 || !provider.IsAllyCode(inv.cmd.Args[0]) {
		return "", ErrBadAllyCode
	}
	code := provider.NormalizeAllyCode(inv.cmd.Args[0])

	if err := s.registry.RegisterUser(ctx, inv.msg.AuthorID, code); err != nil {
		return "", err
	}
	return "Registered ally code " + code + ".", nil
}

func (s *Service) handleUnregister(ctx context.Context, inv *invocation) (string, error) {
	code := ""
	if len(inv.cmd.Args) > 0 {
		if !provider.IsAllyCode(inv.cmd.Args[0]) {
			return "", ErrBadAllyCode
		}
		code = provider.NormalizeAllyCode(inv.cmd.Args[0])
	}

	if err := s.registry.UnregisterUser(ctx, inv.msg.AuthorID, code); err != nil {
		return "", err
	}
	return "Unregistered.", nil
}

func (s *Service) handleRegisterGuild(ctx context.Context, inv *invocation) (string, error) {
	if inv.msg.GuildID == "" {
		return "", ErrNoGuild
	}
	if err := s.registry.RegisterGuild(ctx, inv.msg.GuildID); err != nil {
		return "", err
	}
	return "Guild registered.", nil
}

func (s *Service) handleUnregisterGuild(ctx context.Context, inv *invocation) (string, error) {
	if inv.msg.GuildID == "" {
		return "", ErrNoGuild
	}
	if err := s.registry.UnregisterGuild(ctx, inv.msg.GuildID); err != nil {
		return "", err
	}
	return "Guild unregistered.", nil
}

// handleVIP manages the intel watchlists: a per-user list for grand
// arena scouting and a per-guild list for territory wars. Unit names
// are canonicalized through the resolver before storage.
func (s *Service) handleVIP(ctx context.Context, inv *invocation) (string, error) {
	args := inv.cmd.Args
	if len(args) < 3 {
		return "", ErrVIPUsage
	}
	scope, op := args[0], args[1]
	name := strings.Join(args[2:], " ")

	unit, err := s.resolver.FindUnit(ctx, name)
	if err != nil {
		return "", err
	}

	switch scope {
	case "gac":
		switch op {
		case "add":
			err = s.registry.AddVIPUnitGAC(ctx, inv.msg.AuthorID, unit.BaseID)
		case "remove":
			err = s.registry.RemoveVIPUnitGAC(ctx, inv.msg.AuthorID, unit.BaseID)
		default:
			return "", ErrVIPUsage
		}
	case "tw":
		if inv.msg.GuildID == "" {
			return "", ErrNoGuild
		}
		switch op {
		case "add":
			err = s.registry.AddVIPUnitTW(ctx, inv.msg.GuildID, unit.BaseID)
		case "remove":
			err = s.registry.RemoveVIPUnitTW(ctx, inv.msg.GuildID, unit.BaseID)
		default:
			return "", ErrVIPUsage
		}
	default:
		return "", ErrVIPUsage
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s watchlist updated: %s %s.", strings.ToUpper(scope), op, unit.NameKey), nil
}

// handleRaids runs the full achievement report workflow: resolve the
// requester's ally code, widen to the guild when asked, load the
// catalog fresh, score, select and render each raid in catalog order,
// delivering reports sequentially.
func (s *Service) handleRaids(ctx context.Context, inv *invocation) (string, error) {
	code, err := s.requesterAllyCode(ctx, inv)
	if err != nil {
		return "", err
	}

	fetch := []string{code}
	if hasToken(inv.cmd.Args, "guild") {
		guildName, members, err := s.roster.GuildAllyCodes(ctx, code)
		if err != nil {
			return "", err
		}
		s.logger.Debug(ctx, "guild scope",
			logger.String("guild", guildName),
			logger.Int("members", len(members)),
		)
		fetch = members
	}

	policy := selection.ParsePolicy(inv.cmd.Args)

	// Loaded fresh every invocation so catalog edits apply immediately.
	raids, err := catalog.Load(s.catalogPath)
	if err != nil {
		return "", err
	}
	index, err := catalog.ResolveMembers(ctx, s.resolver, raids)
	if err != nil {
		return "", err
	}

	roster, err := s.roster.Players(ctx, fetch)
	if err != nil {
		return "", err
	}

	// Raids go out one at a time; message order beats throughput here.
	for _, raid := range raids {
		scoreStart := time.Now()
		results, err := s.scorer.Score(raid, index, roster)
		if err != nil {
			return "", err
		}
		metrics.RecordScoringDuration(float64(time.Since(scoreStart).Milliseconds()))

		selected := selection.Apply(policy, results)

		for _, rep := range s.renderer.Render(raid, selected, policy) {
			if _, err := s.messenger.Send(ctx, inv.msg.Message.ChannelID, rep); err != nil {
				return "", err
			}
			metrics.RecordReportRendered()
		}
	}

	return "", nil
}

// requesterAllyCode resolves which of the requester's ally codes a
// command should act on. With several codes registered the requester
// picks one via a numbered prompt, bounded by the reaction timeout.
func (s *Service) requesterAllyCode(ctx context.Context, inv *invocation) (string, error) {
	codes := s.registry.AllyCodes(ctx, inv.msg.AuthorID)
	switch len(codes) {
	case 0:
		return "", ErrNotRegistered
	case 1:
		return codes[0], nil
	}

	var b strings.Builder
	b.WriteString("You have several ally codes registered, pick one:\n")
	for i, code := range codes {
		fmt.Fprintf(&b, "%d) %s\n", i+1, code)
	}

	prompt, err := s.messenger.SendText(ctx, inv.msg.Message.ChannelID, b.String())
	if err != nil {
		return "", err
	}
	defer func() {
		_ = s.messenger.Delete(ctx, prompt)
	}()

	pickCtx, cancel := context.WithTimeout(ctx, s.reactionTimeout)
	defer cancel()

	pick, err := s.messenger.AwaitPick(pickCtx, prompt, inv.msg.AuthorID, len(codes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPickRequired, err)
	}
	return codes[pick], nil
}

func hasToken(args []string, token string) bool {
	for _, a := range args {
		if a == token {
			return true
		}
	}
	return false
}
