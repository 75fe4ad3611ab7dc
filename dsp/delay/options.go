package delay

const defaultMaxDelay = 1.0

type config struct {
	maxDelay float64
}

// Option configures a [Fractional] line at construction.
type Option func(*config)

// WithMaxDelay sets the longest delay the line can hold, in seconds.
// Non-positive values keep the default of 1 second.
func WithMaxDelay(seconds float64) Option {
	return func(cfg *config) {
		if seconds > 0 {
			cfg.maxDelay = seconds
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{maxDelay: defaultMaxDelay}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
