// Package config loads and validates the tool's
// environment configuration and the optional model
// settings overlay file.
package config
