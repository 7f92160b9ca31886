package build

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/awsbuild/awsbuild/internal/launcher"
	"github.com/awsbuild/awsbuild/internal/paths"
)

// Build-context files baked into the binary. Their content is a contract
// with the container run: build.sh expects TARGET_DIR and BIN_TARGET in the
// environment and leaves the compiled binary at <target-dir>/release/<bin>.
var (
	//go:embed container/Dockerfile
	dockerfile string

	//go:embed container/build.sh
	buildScript string
)

// Builds the container image for the given mode and toolchain version and
// returns its tag.
//
// The tag is deterministic in (mode, rust version), so repeated builds with
// unchanged inputs re-invoke the runtime cheaply and the runtime's own layer
// cache handles incrementality. The build context is a fresh temporary
// directory holding the two embedded template files; parameterization
// happens entirely through build args.
func (b *Builder) buildImage(ctx context.Context, relProjectPath string) (string, error) {
	if !utf8.ValidString(relProjectPath) {
		return "", fmt.Errorf("%w: project path is not valid UTF-8", ErrConfiguration)
	}

	tag := fmt.Sprintf("aws-build-%s-%s", b.Mode.Name(), b.RustVersion)

	dir, err := writeContainerFiles()
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	slog.Info("building container image", "tag", tag)

	opt := launcher.BuildOpt{
		Context: dir,
		Tag:     tag,
		BuildArgs: [][2]string{
			{"FROM_IMAGE", b.Mode.BaseImage()},
			{"RUST_VERSION", b.RustVersion},
			{"DEV_PKGS", strings.Join(b.Packages, " ")},
			{"PROJECT_PATH", relProjectPath},
		},
	}
	if _, err := b.Launcher.BuildImage(ctx, opt); err != nil {
		return "", fmt.Errorf("%w: container image build: %w", ErrBuild, err)
	}

	return tag, nil
}

// Writes the embedded build-context files into a fresh temporary directory
// and returns its path. The caller removes the directory when done.
func writeContainerFiles() (string, error) {
	dir, err := os.MkdirTemp("", "awsbuild-context-")
	if err != nil {
		return "", fmt.Errorf("%w: create build context: %w", ErrFileSystemOperation, err)
	}

	files := map[string]string{
		"Dockerfile": dockerfile,
		"build.sh":   buildScript,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), paths.DefaultFileMode); err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("%w: write %s: %w", ErrFileSystemOperation, path, err)
		}
	}

	return dir, nil
}
