package manybody

import (
	"log/slog"

	"github.com/qubitlab/manybody/output"
)

type options struct {
	logger       *Logger
	store        output.Store
	compressLogs bool
}

// Option configures run behavior.
type Option func(*options)

// WithLogger configures structured logging for the run.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithStore configures the artifact store the run writes its log, snapshot
// and manifest to. Without a store no artifacts are written and results are
// only returned in memory.
func WithStore(store output.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCompressedLogs enables gzip compression of the run log artifact.
func WithCompressedLogs() Option {
	return func(o *options) {
		o.compressLogs = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
