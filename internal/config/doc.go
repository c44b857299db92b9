// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It replaces the interactive prompts for
// stock and cut list with strongly typed settings.
package config
