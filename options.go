package barecat

import (
	"github.com/isarandi/barecat/index"
	"github.com/isarandi/barecat/shard"
)

type options struct {
	logger         *Logger
	resolver       index.Resolver
	checksumWindow int
}

// Option configures Open behavior.
type Option func(*options)

// WithLogger sets the logger used for structured diagnostics. The default
// discards all output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithResolver swaps in a custom index backend in place of the built-in
// SQLite index. The index path passed to Open is ignored in that case, and
// closing the archive closes the resolver.
func WithResolver(r index.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithChecksumWindow sets the chunk size for streaming checksum computation.
// Values <= 0 select shard.DefaultChecksumWindow.
func WithChecksumWindow(bytes int) Option {
	return func(o *options) {
		o.checksumWindow = bytes
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		checksumWindow: shard.DefaultChecksumWindow,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = NoopLogger()
	}
	return opts
}
