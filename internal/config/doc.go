// Package config loads the application configuration from an optional
// YAML file overlaid with environment variables.
package config
