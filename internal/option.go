package internal

// Option configures Run and RunMCP.
type Option func(*options)

type options struct {
	config *Config
}

// WithConfig supplies the loaded configuration. Both entrypoints fail
// without one.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}
