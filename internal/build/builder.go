package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/awsbuild/awsbuild/internal/launcher"
	"github.com/awsbuild/awsbuild/internal/paths"
)

// Configuration for one build. Immutable for the duration of [Builder.Run].
type Builder struct {
	// Rust version to install. Can be anything rustup understands as a valid
	// version, e.g. "stable" or "1.45.2".
	RustVersion string

	// Whether to build for Amazon Linux 2 or AWS Lambda.
	Mode Mode

	// Name of the binary target to build. Can be empty if the project only
	// has one binary target.
	Bin string

	// Strip the binary.
	Strip bool

	// Container launcher.
	Launcher *launcher.Launcher

	// The root of the code that gets mounted in the container. All the
	// source must live beneath this directory.
	CodeRoot string

	// The path of the crate to build. It must be somewhere within the
	// CodeRoot directory (or the same path).
	ProjectPath string

	// Dev packages to install in the build container.
	Packages []string

	// Relabel files before bind-mounting.
	Relabel launcher.Relabel
}

// Returned from [Builder.Run] on success.
type Output struct {
	// Path of the generated file.
	Real string

	// Path of the latest-* symlink.
	Symlink string
}

// Runs the build in a container.
//
// This produces either a standalone executable (for Amazon Linux 2) or a zip
// file (for AWS Lambda). The file is given a unique name for convenient
// uploading to S3, and a short symlink to the file is also created
// (target/latest-al2 or target/latest-lambda). The paths of both are
// returned.
//
// The flow is strictly sequential: validate configuration, prepare
// directories, resolve the binary target, build the image, run the
// container, package the result, publish the pointer. Nothing is retried;
// the first failure aborts the build.
func (b *Builder) Run(ctx context.Context) (*Output, error) {
	// Canonicalize the input paths. This matters when they are passed as
	// volume arguments to the runtime.
	codeRoot, err := canonicalize(b.CodeRoot)
	if err != nil {
		return nil, err
	}
	projectPath, err := canonicalize(b.ProjectPath)
	if err != nil {
		return nil, err
	}

	relProjectPath, err := relativeProjectPath(codeRoot, projectPath)
	if err != nil {
		return nil, err
	}

	// Ensure that the target directory exists.
	targetDir := filepath.Join(projectPath, "target")
	if err := ensureDir(targetDir); err != nil {
		return nil, err
	}
	outputDir := filepath.Join(targetDir, "aws-build")
	if err := ensureDir(outputDir); err != nil {
		return nil, err
	}

	// Resolve the binary target before any container work so that an
	// ambiguous selection fails without invoking the runtime.
	bin, err := resolveBinary(ctx, projectPath, b.Bin)
	if err != nil {
		return nil, err
	}

	imageTag, err := b.buildImage(ctx, relProjectPath)
	if err != nil {
		return nil, err
	}

	run := &containerRun{
		mode:      b.Mode,
		bin:       bin,
		launcher:  b.Launcher,
		outputDir: outputDir,
		imageTag:  imageTag,
		relabel:   b.Relabel,
		codeRoot:  codeRoot,
	}
	binPath, err := run.run(ctx)
	if err != nil {
		return nil, err
	}

	outPath, err := packageArtifact(ctx, b.Mode, binPath, outputDir, bin, b.Strip, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	symlinkPath, err := publishLatest(targetDir, b.Mode, outPath)
	if err != nil {
		return nil, err
	}

	return &Output{
		Real:    outPath,
		Symlink: symlinkPath,
	}, nil
}

// Resolves a path to its canonical absolute form.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", ErrFileSystemOperation, path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", ErrFileSystemOperation, path, err)
	}
	return resolved, nil
}

// Returns the project path relative to the code root.
//
// The project must be the code root itself or a descendant of it; anything
// else is a configuration error, detected before any external process runs.
func relativeProjectPath(codeRoot, projectPath string) (string, error) {
	rel, err := filepath.Rel(codeRoot, projectPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: project path %s must be within the code root %s",
			ErrConfiguration, projectPath, codeRoot)
	}
	return rel, nil
}

// Creates a directory if it doesn't already exist.
//
// An "already exists" failure is swallowed; the path existing as something
// other than a directory is an error. Safe to call concurrently from
// unrelated processes.
func ensureDir(path string) error {
	if err := os.Mkdir(path, paths.DefaultDirMode); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: create directory %s: %w", ErrFileSystemOperation, path, err)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrFileSystemOperation, path)
	}
	return nil
}

// Publishes target/latest-<mode> as a symlink to the artifact at outPath.
//
// Any existing link is removed best-effort first; non-existence is not an
// error, and other removal failures surface through the subsequent create.
// This is not a crash-atomic update: a process killed between remove and
// create leaves no pointer.
func publishLatest(targetDir string, mode Mode, outPath string) (string, error) {
	symlinkPath := filepath.Join(targetDir, "latest-"+mode.Name())

	_ = os.Remove(symlinkPath)
	if err := os.Symlink(outPath, symlinkPath); err != nil {
		return "", fmt.Errorf("%w: create symlink %s: %w", ErrFileSystemOperation, symlinkPath, err)
	}

	slog.Info("symlink", "path", symlinkPath)
	return symlinkPath, nil
}
