// Package config loads and validates aggregator configuration.
//
// Configuration is YAML with ${VAR} environment expansion. Secrets
// (forex API key, database URL) default from the environment when the
// file does not set them, so a .env file plus defaults is a complete
// configuration.
package config
