// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// and a .env file in the working directory is read first when present. Every field
// has a default, so the recorder runs with no config file at all.
package config
