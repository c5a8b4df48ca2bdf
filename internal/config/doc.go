// Package config loads, normalizes, and validates shellac configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: the library root, external tool binaries and timeouts, default
// song ordering, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical sort keys, and clear validation errors.
package config
