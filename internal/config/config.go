package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Default Rust toolchain version installed in the build container. Can be
// anything rustup understands, e.g. "stable" or "1.45.2".
const DefaultRustVersion = "stable"

// Build defaults that would otherwise be hard-coded. Values are overridden
// first by the optional config file and then by CLI flags.
type Config struct {
	// Rust toolchain version to install in the build container.
	RustVersion string `yaml:"rust_version"`

	// Container command: "docker", "sudo-docker", or "podman". Empty means
	// auto-detect from PATH.
	ContainerCmd string `yaml:"container_cmd"`

	// SELinux relabel policy for bind mounts: "shared", "unshared", or empty
	// for none.
	Relabel string `yaml:"relabel"`
}

// Returns the built-in defaults.
func Default() Config {
	return Config{
		RustVersion: DefaultRustVersion,
	}
}

// Loads configuration from the YAML file at path, overlaying the built-in
// defaults. A missing file is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.RustVersion == "" {
		cfg.RustVersion = DefaultRustVersion
	}

	return cfg, nil
}
