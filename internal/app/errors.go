package app

import "errors"

// Service error sentinels.
var (
	// ErrMissingDependency indicates the service was started without a
	// required collaborator.
	ErrMissingDependency = errors.New("missing service dependency")

	// ErrUnknownCommand indicates a prefixed message named no known command.
	ErrUnknownCommand = errors.New("unknown command, try help")

	// ErrNotRegistered indicates the requester has no ally code on file.
	ErrNotRegistered = errors.New("no ally code registered, use the register command first")

	// ErrBadAllyCode indicates an argument was not a well-formed ally code.
	ErrBadAllyCode = errors.New("that does not look like an ally code")

	// ErrNoGuild indicates a guild command arrived outside a guild channel.
	ErrNoGuild = errors.New("this command only works in a guild channel")

	// ErrPickRequired indicates the requester did not pick an ally code
	// in time.
	ErrPickRequired = errors.New("could not tell which ally code to use")

	// ErrVIPUsage indicates a malformed vip command.
	ErrVIPUsage = errors.New("usage: vip gac|tw add|remove <unit>")
)
