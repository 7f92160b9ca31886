package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

// One container run producing a raw binary.
type containerRun struct {
	mode      Mode
	bin       string             // Binary target being built.
	launcher  *launcher.Launcher // Container runtime CLI.
	outputDir string             // Host directory mounted at /code/target.
	imageTag  string             // Image produced by buildImage.
	relabel   launcher.Relabel   // Bind-mount relabel policy.

	// The root of the code that gets mounted in the container. All the
	// source must live beneath this directory.
	codeRoot string
}

// Runs the build container and returns the path of the binary it produced.
//
// Two cache directories are created per mode to speed up rebuilds. They are
// host mounts rather than volumes so that their permissions aren't set to
// root only. For rootless runtimes the output directory's ownership is
// shifted to the container's mapped root before the run and restored
// afterwards on every exit path.
func (c *containerRun) run(ctx context.Context) (string, error) {
	modeName := c.mode.Name()

	registryDir := filepath.Join(c.outputDir, modeName+"-cargo-registry")
	if err := ensureDir(registryDir); err != nil {
		return "", err
	}
	gitDir := filepath.Join(c.outputDir, modeName+"-cargo-git")
	if err := ensureDir(gitDir); err != nil {
		return "", err
	}

	var guard *permissionGuard
	if c.launcher.IsRootless() {
		var err error
		guard, err = acquirePermissions(ctx, c.launcher, c.outputDir)
		if err != nil {
			return "", fmt.Errorf("%w: container run: %w", ErrBuild, err)
		}
		defer guard.releaseQuiet(ctx)
	}

	mountOptions := c.relabel.MountOptions()

	opt := launcher.RunOpt{
		Remove: true,
		Init:   true,
		User:   launcher.CurrentUser(),
		Env: [][2]string{
			{"TARGET_DIR", "/code/target/" + modeName},
			{"BIN_TARGET", c.bin},
		},
		Volumes: []launcher.Volume{
			// Mount the code root.
			{
				Src:     c.codeRoot,
				Dst:     "/code",
				Options: mountOptions,
			},
			// Mount two cargo directories to make rebuilds faster.
			{
				Src:       registryDir,
				Dst:       "/cargo/registry",
				ReadWrite: true,
				Options:   mountOptions,
			},
			{
				Src:       gitDir,
				Dst:       "/cargo/git",
				ReadWrite: true,
				Options:   mountOptions,
			},
			// Mount the output target directory.
			{
				Src:       c.outputDir,
				Dst:       "/code/target",
				ReadWrite: true,
				Options:   mountOptions,
			},
		},
		Image: c.imageTag,
	}

	slog.Info("running build container", "image", c.imageTag, "bin", c.bin)

	if _, err := c.launcher.RunContainer(ctx, opt); err != nil {
		return "", fmt.Errorf("%w: container run: %w", ErrBuild, err)
	}

	if guard != nil {
		if err := guard.release(ctx); err != nil {
			return "", fmt.Errorf("%w: container run: %w", ErrBuild, err)
		}
	}

	// The path convention is a contract with the container's build script.
	return filepath.Join(c.outputDir, modeName, "release", c.bin), nil
}
