package client

import "time"

type options struct {
	programCacheSize int
	programCacheTTL  time.Duration
}

type Option func(*options)

// WithProgramCacheSize caps how many loaded programs the client keeps
// resident. Loading one more evicts and unloads the least recently used
// program.
func WithProgramCacheSize(size int) Option {
	return func(o *options) {
		o.programCacheSize = size
	}
}

// WithProgramCacheTTL sets how long an unused loaded program stays
// resident before it is unloaded.
func WithProgramCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.programCacheTTL = ttl
	}
}

func applyOptions(opts ...Option) options {
	o := options{
		programCacheSize: 128,
		programCacheTTL:  time.Minute * 30,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
