package build

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

// Subset of the cargo metadata document this package consumes.
type cargoMetadata struct {
	Packages []struct {
		Targets []struct {
			Name string   `json:"name"`
			Kind []string `json:"kind"`
		} `json:"targets"`
	} `json:"packages"`
}

// Returns the names of all binary targets in the project at dir.
//
// Discovery shells out to the host package manager; the project's own
// dependencies are not resolved.
func binaryTargets(ctx context.Context, dir string) ([]string, error) {
	out, err := launcher.Capture(ctx, launcher.Command{
		Name: "cargo",
		Args: []string{"metadata", "--no-deps", "--format-version", "1"},
		Dir:  dir,
	})
	if err != nil {
		return nil, err
	}

	var metadata cargoMetadata
	if err := json.Unmarshal(out, &metadata); err != nil {
		return nil, fmt.Errorf("parse cargo metadata: %w", err)
	}

	var names []string
	for _, pkg := range metadata.Packages {
		for _, target := range pkg.Targets {
			for _, kind := range target.Kind {
				if kind == "bin" {
					names = append(names, target.Name)
					break
				}
			}
		}
	}
	return names, nil
}

// Resolves the binary target to build.
//
// An explicit selection always wins. Otherwise the project must have exactly
// one binary target; zero or several is a configuration error, reported
// before any container work begins.
func resolveBinary(ctx context.Context, dir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	names, err := binaryTargets(ctx, dir)
	if err != nil {
		return "", err
	}

	switch len(names) {
	case 0:
		return "", fmt.Errorf("%w: project has no binary targets", ErrConfiguration)
	case 1:
		return names[0], nil
	}
	return "", fmt.Errorf("%w: must specify bin target when package has more than one", ErrConfiguration)
}
