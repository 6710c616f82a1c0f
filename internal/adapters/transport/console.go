package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/rexbot/internal/report"
)

// ConsoleMessenger is a Messenger over a terminal, used when running
// the bot locally without a chat platform connection. A single reader
// goroutine owns the input stream; command lines and AwaitPick answers
// both come off it, so a pick simply consumes the next line.
type ConsoleMessenger struct {
	mu     sync.Mutex
	out    io.Writer
	lines  chan string
	nextID int
}

// NewConsoleMessenger creates a console messenger over the given streams.
func NewConsoleMessenger(in io.Reader, out io.Writer) *ConsoleMessenger {
	c := &ConsoleMessenger{
		out:   out,
		lines: make(chan string),
	}

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
		close(c.lines)
	}()

	return c
}

// ReadLine returns the next input line. It returns io.EOF once the
// input stream closes.
func (c *ConsoleMessenger) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (c *ConsoleMessenger) newMessage(channelID string) Message {
	c.nextID++
	return Message{ID: fmt.Sprintf("console-%d", c.nextID), ChannelID: channelID}
}

// Send implements Messenger.
func (c *ConsoleMessenger) Send(_ context.Context, channelID string, rep report.Report) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "== %s ==\n", rep.Title)
	if rep.Description != "" {
		fmt.Fprintln(c.out, rep.Description)
	}
	for _, field := range rep.Fields {
		fmt.Fprintf(c.out, "-- %s --\n%s\n", field.Name, field.Value)
	}
	if rep.Footer != "" {
		fmt.Fprintln(c.out, rep.Footer)
	}

	return c.newMessage(channelID), nil
}

// SendText implements Messenger.
func (c *ConsoleMessenger) SendText(_ context.Context, channelID string, text string) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, text)
	return c.newMessage(channelID), nil
}

// React implements Messenger.
func (c *ConsoleMessenger) React(_ context.Context, _ Message, emoji string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, emoji)
	return nil
}

// Delete implements Messenger. Printed output cannot be recalled.
func (c *ConsoleMessenger) Delete(context.Context, Message) error {
	return nil
}

// AwaitPick implements Messenger by reading an option number (1-based)
// from the input stream.
func (c *ConsoleMessenger) AwaitPick(ctx context.Context, _ Message, _ string, n int) (int, error) {
	line, err := c.ReadLine(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPickTimeout, err)
	}

	pick, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || pick < 1 || pick > n {
		return 0, fmt.Errorf("%w: expected a number between 1 and %d", ErrPickTimeout, n)
	}
	return pick - 1, nil
}
