package eval

import (
	"github.com/xiam/minitla/log"
)

type Option func(*Evaluator)

// WithLogger sets the logger used to trace evaluation. The zero Logger, which
// is the default, discards everything.
func WithLogger(logger log.Logger) Option {
	return func(ev *Evaluator) {
		ev.logger = logger
	}
}
