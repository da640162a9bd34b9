package internal

import "github.com/starford/raidho/internal/indexer"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	scan   *indexer.Request
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithScanRequest sets the indexing run executed by RunScan.
func WithScanRequest(req indexer.Request) Option {
	return func(a *application) {
		a.scan = &req
	}
}
