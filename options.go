package arrio

import (
	"log/slog"
	"os"

	"github.com/arrio/arrio/codec"
)

type options struct {
	registry *codec.Registry
	logger   *Logger
}

// Option configures Array constructor behavior.
//
// Options exist mainly to avoid codec-specific constructor variants;
// most callers can rely on the defaults.
type Option func(*options)

// WithRegistry configures the codec registry used to resolve file
// extensions. If nil is passed, the package default registry is used.
func WithRegistry(r *codec.Registry) Option {
	return func(o *options) {
		if r == nil {
			r = codec.Default()
		}
		o.registry = r
	}
}

// WithLogger sets a custom logger. If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel enables text logging to stderr at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		registry: codec.Default(),
		logger:   NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
