// Loads build defaults from an optional per-user YAML config file.
//
// The file lives at the path returned by paths.ConfigFile. All values are
// optional; anything unset falls back to the built-in defaults, and CLI
// flags override both.
package config
