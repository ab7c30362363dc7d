package config

import "context"

// Loader is the interface for a format-specific recipe file loader.
type Loader interface {
	// Load reads the recipe file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}
