package timesheet

import "github.com/okian/paysheet/pkg/logger"

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithRateAliases sets the accepted rate column names. Empty lists are ignored.
func WithRateAliases(aliases []string) Option {
	return func(p *Parser) {
		if len(aliases) > 0 {
			p.rateAliases = append([]string(nil), aliases...)
		}
	}
}

// WithLogger sets the logger used to report skipped rows.
func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxLineBytes bounds the length of a single input line.
func WithMaxLineBytes(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxLineBytes = n
		}
	}
}
