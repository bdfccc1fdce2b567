// Package config loads, normalizes, and validates vadset configuration data.
//
// Values are layered: repository defaults, then the TOML file, then VADSET_*
// environment variables, then command-line flags applied by the CLI before
// it calls Finalize.
package config
