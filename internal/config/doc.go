// Package config handles loading and validation of courses configuration.
//
// Configuration is read from ~/.config/courses/config.toml. A .env file in
// the working directory is loaded into the environment first, then COURSES_*
// environment variables override file settings.
//
// # Configuration Sources (highest priority first)
//
//   - COURSES_* environment variables (e.g. COURSES_EMAIL, COURSES_STORE_BACKEND)
//   - .env in the working directory (never overrides variables already set)
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - base_url: Root URL of the course collection service
//   - email: Caller identity sent with every request
//   - timeout: HTTP timeout per request (default: "15s")
//   - drain_timeout: How long one-shot commands wait for in-flight favorite
//     requests before exiting (default: "5s"). "0s" waits until they finish.
//
// # Store Configuration
//
//	[store]
//	backend = "json"       # "json", "sqlite" or "memory"
//	data_dir = "~/.courses"
//
// # Theme Configuration
//
//	[theme]
//	name = "nord"   # "none", "default", "dracula" or "nord"
//	mode = "auto"   # "auto", "light" or "dark"
//	ascii = false   # use * instead of ★/☆
//
// # Path Validation
//
// data_dir must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
