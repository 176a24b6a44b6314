package parser

import (
	"github.com/xiam/minitla/log"
)

// Option configures a Parser
type Option func(*Parser)

// WithLogger makes the parser report every stack transition at trace level.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithSuggestions controls whether errors about unknown operators carry a
// "did you mean" hint. Enabled by default.
func WithSuggestions(enable bool) Option {
	return func(p *Parser) {
		p.suggest = enable
	}
}
