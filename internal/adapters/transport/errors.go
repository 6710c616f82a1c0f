package transport

import "errors"

// Transport error sentinels.
var (
	// ErrSendFailed indicates the transport could not deliver a message.
	ErrSendFailed = errors.New("failed to send message")

	// ErrPickTimeout indicates no option was picked before the deadline.
	ErrPickTimeout = errors.New("no option picked in time")

	// ErrUnknownMessage indicates an operation referenced a message the
	// transport does not know.
	ErrUnknownMessage = errors.New("unknown message")
)
