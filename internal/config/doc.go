// Package config loads and validates application configuration.
//
// Values come from built-in defaults, an optional config.yaml in the working
// directory, and environment variables prefixed with BAZI_, with nested keys
// joined by underscores (engine.cache_size is BAZI_ENGINE_CACHE_SIZE).
// Environment variables win.
package config
