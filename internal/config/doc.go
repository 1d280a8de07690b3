// Package config handles loading and parsing wbscope configuration files.
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wbscope/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Example config.toml:
//
//	api_base = "127.0.0.1:5000"
//	parse_limit = 50
//
// Both fields are optional. api_base accepts a host:port pair or a full URL;
// parse_limit caps how many products one ingestion search may add and is
// clamped to 200. Tilde expansion is performed on the config path.
//
// Missing config files are NOT an error - defaults are used instead, so
// wbscope works out-of-the-box against a backend on the default port.
package config
