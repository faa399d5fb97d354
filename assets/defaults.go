package assets

import (
	_ "embed"
)

// DefaultConfigYAML is written to ~/.painpoint/config.yaml on first run.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
