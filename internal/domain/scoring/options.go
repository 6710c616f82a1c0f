package scoring

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSlotCount overrides the fixed team size the aggregate total is
// scaled against. The default matches the report format's five columns.
func WithSlotCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.slotCount = n
		}
	}
}
