package registry

import "github.com/okian/rexbot/pkg/logger"

// Option applies a configuration option to the FileRegistry.
type Option func(*FileRegistry)

// WithLogger sets a custom logger for the registry.
func WithLogger(l logger.Logger) Option {
	return func(r *FileRegistry) {
		if l != nil {
			r.logger = l
		}
	}
}
