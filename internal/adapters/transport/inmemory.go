package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/rexbot/internal/report"
)

// SentReport is a report delivered through the in-memory messenger.
type SentReport struct {
	Message   Message
	ChannelID string
	Report    report.Report
}

// SentText is a plain text message delivered through the in-memory
// messenger.
type SentText struct {
	Message   Message
	ChannelID string
	Text      string
}

// Reaction is an emoji attached to a message.
type Reaction struct {
	Message Message
	Emoji   string
}

// InMemoryMessenger is a Messenger that records traffic and replays
// scripted picks, for tests.
type InMemoryMessenger struct {
	mu        sync.Mutex
	nextID    int
	reports   []SentReport
	texts     []SentText
	reactions []Reaction
	deleted   []Message
	picks     []int
	failSends bool
}

// NewInMemoryMessenger creates an empty in-memory messenger.
func NewInMemoryMessenger() *InMemoryMessenger {
	return &InMemoryMessenger{}
}

// ScriptPick queues the index AwaitPick returns on its next call.
func (m *InMemoryMessenger) ScriptPick(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picks = append(m.picks, index)
}

// FailSends makes every subsequent send return ErrSendFailed.
func (m *InMemoryMessenger) FailSends(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSends = fail
}

func (m *InMemoryMessenger) newMessage(channelID string) Message {
	m.nextID++
	return Message{ID: fmt.Sprintf("msg-%d", m.nextID), ChannelID: channelID}
}

// Send implements Messenger.
func (m *InMemoryMessenger) Send(_ context.Context, channelID string, rep report.Report) (Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSends {
		return Message{}, ErrSendFailed
	}
	msg := m.newMessage(channelID)
	m.reports = append(m.reports, SentReport{Message: msg, ChannelID: channelID, Report: rep})
	return msg, nil
}

// SendText implements Messenger.
func (m *InMemoryMessenger) SendText(_ context.Context, channelID string, text string) (Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSends {
		return Message{}, ErrSendFailed
	}
	msg := m.newMessage(channelID)
	m.texts = append(m.texts, SentText{Message: msg, ChannelID: channelID, Text: text})
	return msg, nil
}

// React implements Messenger.
func (m *InMemoryMessenger) React(_ context.Context, msg Message, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactions = append(m.reactions, Reaction{Message: msg, Emoji: emoji})
	return nil
}

// Delete implements Messenger.
func (m *InMemoryMessenger) Delete(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, msg)
	return nil
}

// AwaitPick implements Messenger. It returns the next scripted pick,
// or ErrPickTimeout when none is queued.
func (m *InMemoryMessenger) AwaitPick(ctx context.Context, _ Message, _ string, n int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPickTimeout, err)
	}
	if len(m.picks) == 0 {
		return 0, ErrPickTimeout
	}

	pick := m.picks[0]
	m.picks = m.picks[1:]
	if pick < 0 || pick >= n {
		return 0, fmt.Errorf("%w: pick %d out of range", ErrPickTimeout, pick)
	}
	return pick, nil
}

// Reports returns a copy of the reports sent so far.
func (m *InMemoryMessenger) Reports() []SentReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentReport(nil), m.reports...)
}

// Texts returns a copy of the plain text messages sent so far.
func (m *InMemoryMessenger) Texts() []SentText {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentText(nil), m.texts...)
}

// Reactions returns a copy of the reactions recorded so far.
func (m *InMemoryMessenger) Reactions() []Reaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Reaction(nil), m.reactions...)
}

// Deleted returns a copy of the deleted messages.
func (m *InMemoryMessenger) Deleted() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.deleted...)
}
