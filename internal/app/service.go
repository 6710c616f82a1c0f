// Package app wires the bot together: it parses incoming chat messages
// into commands and drives the registry, roster provider and raid
// scoring pipeline to answer them.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rexbot/internal/adapters/provider"
	"github.com/okian/rexbot/internal/adapters/registry"
	"github.com/okian/rexbot/internal/adapters/transport"
	"github.com/okian/rexbot/internal/domain/scoring"
	"github.com/okian/rexbot/internal/report"
	"github.com/okian/rexbot/pkg/logger"
	"github.com/okian/rexbot/pkg/metrics"
)

// Default service configuration.
const (
	defaultPrefix          = "cr."
	defaultCatalogPath     = "config/raids_helper.json"
	defaultReactionTimeout = 30 * time.Second
)

// invocation carries per-command context through a handler.
type invocation struct {
	id  string
	seq uint64
	msg transport.Incoming
	cmd transport.Command
}

// handler answers one command. A non-empty reply is sent back as plain
// text; report-producing handlers deliver their output themselves.
type handler func(ctx context.Context, inv *invocation) (string, error)

// Service is the bot command loop.
type Service struct {
	mu sync.RWMutex

	prefix          string
	catalogPath     string
	reactionTimeout time.Duration

	registry  registry.Store
	roster    provider.RosterProvider
	resolver  provider.UnitResolver
	messenger transport.Messenger

	scorer   *scoring.Engine
	renderer *report.Renderer

	handlers map[string]handler

	started   bool
	startedAt time.Time
	requests  atomic.Uint64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPrefix sets the chat command prefix.
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithCatalogPath sets the raid catalog document path.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.catalogPath = path
		}
	}
}

// WithReactionTimeout bounds the wait for an ally-code pick.
func WithReactionTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.reactionTimeout = d
		}
	}
}

// WithRegistry sets the user/guild registry.
func WithRegistry(store registry.Store) Option {
	return func(s *Service) {
		s.registry = store
	}
}

// WithRosterProvider sets the roster provider.
func WithRosterProvider(p provider.RosterProvider) Option {
	return func(s *Service) {
		s.roster = p
	}
}

// WithUnitResolver sets the unit resolver.
func WithUnitResolver(r provider.UnitResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithMessenger sets the chat transport.
func WithMessenger(m transport.Messenger) Option {
	return func(s *Service) {
		s.messenger = m
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		prefix:          defaultPrefix,
		catalogPath:     defaultCatalogPath,
		reactionTimeout: defaultReactionTimeout,
		scorer:          scoring.NewEngine(),
		renderer:        report.NewRenderer(report.WithFieldSizeLimit(transport.MaxFieldSize)),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[string]handler{
		"help":            s.handleHelp,
		"info":            s.handleInfo,
		"allycode":        s.handleAllyCode,
		"register":        s.handleRegister,
		"unregister":      s.handleUnregister,
		"registerguild":   s.handleRegisterGuild,
		"unregisterguild": s.handleUnregisterGuild,
		"raids":           s.handleRaids,
		"vip":             s.handleVIP,
	}

	return s
}

// Start marks the service ready to handle commands.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	switch {
	case s.registry == nil:
		return ErrMissingDependency
	case s.roster == nil:
		return ErrMissingDependency
	case s.resolver == nil:
		return ErrMissingDependency
	case s.messenger == nil:
		return ErrMissingDependency
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "bot service started", logger.String("prefix", s.prefix))
	return nil
}

// Stop marks the service stopped. In-flight commands finish on their own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "bot service stopped")
}

// Handle processes one incoming chat message. Messages that do not
// carry the bot prefix are ignored. Handler failures are reported back
// to the requester and never propagate.
func (s *Service) Handle(ctx context.Context, msg transport.Incoming) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return
	}

	cmd, ok := transport.ParseCommand(msg.Content, s.prefix)
	if !ok {
		return
	}

	// An ally code in command position addresses the command that
	// follows it: "cr.123-456-789 register" acts on that code.
	if provider.IsAllyCode(cmd.Name) && len(cmd.Args) > 0 {
		code := provider.NormalizeAllyCode(cmd.Name)
		cmd = transport.Command{
			Name: cmd.Args[0],
			Args: append([]string{code}, cmd.Args[1:]...),
		}
	}

	inv := &invocation{
		id:  uuid.NewString(),
		seq: s.requests.Add(1),
		msg: msg,
		cmd: cmd,
	}

	log := s.logger.With(
		logger.String("invocation", inv.id),
		logger.String("command", cmd.Name),
		logger.String("author", msg.AuthorID),
	)
	log.Info(ctx, "handling command", logger.Any("seq", inv.seq))

	start := time.Now()
	defer func() {
		metrics.RecordCommandDuration(cmd.Name, float64(time.Since(start).Milliseconds()))
	}()

	h, ok := s.handlers[cmd.Name]
	if !ok {
		s.fail(ctx, inv, ErrUnknownCommand)
		return
	}

	reply, err := h(ctx, inv)
	if err != nil {
		log.Error(ctx, "command failed", logger.Error(err))
		s.fail(ctx, inv, err)
		return
	}

	metrics.RecordCommandProcessed(cmd.Name)
	_ = s.messenger.React(ctx, inv.msg.Message, transport.SuccessReaction)
	if reply != "" {
		if _, err := s.messenger.SendText(ctx, inv.msg.Message.ChannelID, reply); err != nil {
			log.Warn(ctx, "failed to send reply", logger.Error(err))
		}
	}
}

// fail reports a command failure: failure react plus a single error
// notification. Output already sent is not rolled back.
func (s *Service) fail(ctx context.Context, inv *invocation, err error) {
	metrics.RecordCommandError(inv.cmd.Name)
	_ = s.messenger.React(ctx, inv.msg.Message, transport.FailureReaction)
	if _, sendErr := s.messenger.SendText(ctx, inv.msg.Message.ChannelID, "Sorry, that did not work: "+err.Error()); sendErr != nil {
		s.logger.Warn(ctx, "failed to notify requester", logger.Error(sendErr))
	}
}

// Stats returns service statistics for the ops endpoint.
func (s *Service) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"prefix":   s.prefix,
		"requests": s.requests.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
	}
	if s.registry != nil {
		stats["registeredUsers"] = s.registry.UserCount(ctx)
		stats["registeredGuilds"] = s.registry.GuildCount(ctx)
	}

	return stats
}
