package build

import (
	"archive/zip"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

// Turns the raw binary produced by the container into the published artifact
// and returns its path.
//
// Amazon Linux 2 builds are optionally stripped and copied byte-for-byte
// under a unique name with no extension. Lambda builds are zipped into an
// archive containing a single "bootstrap" entry. Both land under
// <output-dir>/<mode>/.
func packageArtifact(ctx context.Context, mode Mode, binPath, outputDir, bin string, stripBinary bool, when time.Time) (string, error) {
	switch mode {
	case ModeAmazonLinux2:
		if stripBinary {
			if err := strip(ctx, binPath); err != nil {
				return "", err
			}
		}

		contents, err := os.ReadFile(binPath)
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %w", ErrFileSystemOperation, binPath, err)
		}

		// The unique name lets multiple versions be uploaded to e.g. S3
		// without overwriting each other.
		outPath := filepath.Join(outputDir, mode.Name(), uniqueName(mode, bin, contents, when))
		slog.Info("writing artifact", "path", outPath)
		if err := os.WriteFile(outPath, contents, 0o755); err != nil {
			return "", fmt.Errorf("%w: write %s: %w", ErrFileSystemOperation, outPath, err)
		}
		return outPath, nil

	case ModeLambda:
		contents, err := os.ReadFile(binPath)
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %w", ErrFileSystemOperation, binPath, err)
		}

		zipName := uniqueName(mode, bin, contents, when) + ".zip"
		zipPath := filepath.Join(outputDir, mode.Name(), zipName)
		slog.Info("writing artifact", "path", zipPath)
		if err := writeBootstrapZip(zipPath, contents); err != nil {
			return "", fmt.Errorf("%w: write %s: %w", ErrFileSystemOperation, zipPath, err)
		}
		return zipPath, nil
	}
	panic(fmt.Sprintf("unknown build mode %d", int(mode)))
}

// Writes a zip archive containing the executable as its single "bootstrap"
// entry, the layout AWS Lambda expects for custom runtimes.
//
// The entry is stored with mode 0755 and deflate compression. The archive is
// only valid once the writer is closed; a partially written file from a
// crash is harmless garbage overwritten by the next build.
func writeBootstrapZip(path string, contents []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	header := &zip.FileHeader{
		Name:   "bootstrap",
		Method: zip.Deflate,
	}
	header.SetMode(0o755)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := w.Write(contents); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

// Runs the strip command to remove symbols and decrease the binary's size.
// A strip failure is a hard build failure.
func strip(ctx context.Context, path string) error {
	if _, err := launcher.Run(ctx, launcher.Command{Name: "strip", Args: []string{path}}); err != nil {
		return fmt.Errorf("strip failed: %w", err)
	}
	return nil
}
