package build

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// Reported for invalid build configuration: a project path outside the
	// code root, an ambiguous binary target, or a path the runtime's argument
	// channel cannot carry. Detected before any external process runs.
	ErrConfiguration = fmt.Errorf("invalid build configuration: %w", errdefs.ErrInvalidArgument)

	// Reported when the container image build or the container run fails.
	ErrBuild = errors.New("build failed")

	// Reported for directory, file, and symlink failures on the host.
	ErrFileSystemOperation = errors.New("file system operation failed")
)
