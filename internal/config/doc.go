// Package config loads environment-driven configuration with defaults
// suitable for local development. Validate reports every problem at
// once so a misconfigured deployment fails fast with the full list.
package config
