package simplex

import "log/slog"

// Step describes one visited basis of a Phase II run, before pricing.
type Step struct {
	Iteration int
	Basis     []int
	Objective float64
}

type options struct {
	logger *slog.Logger
	trace  func(Step)
}

// Option configures a solve.
type Option func(*options)

// WithLogger sets the logger for pivot and phase records. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTrace registers fn to observe every basis visited by Phase II.
func WithTrace(fn func(Step)) Option {
	return func(o *options) {
		o.trace = fn
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
