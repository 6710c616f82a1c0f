// Package transport abstracts the chat platform the bot talks through:
// sending reports, reacting to messages and awaiting user picks.
package transport

import (
	"context"
	"strings"

	"github.com/okian/rexbot/internal/report"
)

// MaxFieldSize is the transport's per-field text limit. Report fields
// longer than this must be paginated before sending.
const MaxFieldSize = 1024

// Reaction emojis used by the command loop.
const (
	SuccessReaction = "✅" // white heavy check mark
	FailureReaction = "❌" // cross mark
)

// Message identifies a message on the chat transport.
type Message struct {
	ID        string
	ChannelID string
}

// Incoming is a message received from the transport, as handed to the
// command loop.
type Incoming struct {
	Message  Message
	AuthorID string
	GuildID  string
	Content  string
}

// Messenger delivers bot output to the chat transport.
type Messenger interface {
	// Send delivers a rendered report to a channel.
	Send(ctx context.Context, channelID string, rep report.Report) (Message, error)

	// SendText delivers a plain text message to a channel.
	SendText(ctx context.Context, channelID string, text string) (Message, error)

	// React attaches an emoji reaction to a message.
	React(ctx context.Context, msg Message, emoji string) error

	// Delete removes a previously sent message.
	Delete(ctx context.Context, msg Message) error

	// AwaitPick waits for the message author to pick one of n numbered
	// options on the given message. It returns the zero-based index of
	// the pick, or an error when the context expires first.
	AwaitPick(ctx context.Context, msg Message, authorID string, n int) (int, error)
}

// Command is a parsed bot command.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a message into a command when it carries the bot
// prefix. The prefix match is case insensitive and a space between the
// prefix and the command name is allowed. The second return value is
// false for messages that are not bot commands.
func ParseCommand(content, prefix string) (Command, bool) {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < len(prefix) {
		return Command{}, false
	}
	if !strings.EqualFold(trimmed[:len(prefix)], prefix) {
		return Command{}, false
	}

	words := strings.Fields(trimmed[len(prefix):])
	if len(words) == 0 {
		return Command{}, false
	}

	return Command{
		Name: strings.ToLower(words[0]),
		Args: words[1:],
	}, true
}
