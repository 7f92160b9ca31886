package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

func TestContainerRunDocker(t *testing.T) {
	fake := useFakeExecutor(t)
	outputDir := t.TempDir()

	run := &containerRun{
		mode:      ModeAmazonLinux2,
		bin:       "mybin",
		launcher:  launcher.New("docker"),
		outputDir: outputDir,
		imageTag:  "aws-build-al2-stable",
		relabel:   launcher.RelabelUnshared,
		codeRoot:  "/code/root",
	}

	binPath, err := run.run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join(outputDir, "al2", "release", "mybin"); binPath != want {
		t.Fatalf("binPath = %q, want %q", binPath, want)
	}

	// The cache directories were created.
	for _, name := range []string{"al2-cargo-registry", "al2-cargo-git"} {
		info, err := os.Stat(filepath.Join(outputDir, name))
		if err != nil || !info.IsDir() {
			t.Fatalf("cache directory %s was not created", name)
		}
	}

	if len(fake.commands) != 1 {
		t.Fatalf("got %d commands, want 1 run", len(fake.commands))
	}

	user := fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
	want := strings.Join([]string{
		"docker run --rm --init",
		"-u " + user,
		"-e TARGET_DIR=/code/target/al2",
		"-e BIN_TARGET=mybin",
		"-v /code/root:/code:ro,Z",
		"-v " + filepath.Join(outputDir, "al2-cargo-registry") + ":/cargo/registry:rw,Z",
		"-v " + filepath.Join(outputDir, "al2-cargo-git") + ":/cargo/git:rw,Z",
		"-v " + outputDir + ":/code/target:rw,Z",
		"aws-build-al2-stable",
	}, " ")
	if got := fake.commands[0].String(); got != want {
		t.Fatalf("run command =\n  %q\nwant\n  %q", got, want)
	}
}

func TestContainerRunRootlessReconcilesPermissions(t *testing.T) {
	fake := useFakeExecutor(t)
	outputDir := t.TempDir()

	run := &containerRun{
		mode:      ModeLambda,
		bin:       "mybin",
		launcher:  launcher.New("podman"),
		outputDir: outputDir,
		imageTag:  "aws-build-lambda-stable",
		codeRoot:  "/code/root",
	}

	if _, err := run.run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(fake.commands) != 3 {
		t.Fatalf("got %d commands, want chown + run + chown", len(fake.commands))
	}

	user := fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
	if got, want := fake.commands[0].String(), "podman unshare chown --recursive "+user+" "+outputDir; got != want {
		t.Fatalf("acquire = %q, want %q", got, want)
	}
	if !strings.HasPrefix(fake.commands[1].String(), "podman run ") {
		t.Fatalf("second command = %q, want the container run", fake.commands[1].String())
	}
	if got, want := fake.commands[2].String(), "podman unshare chown --recursive 0:0 "+outputDir; got != want {
		t.Fatalf("release = %q, want %q", got, want)
	}
}

func TestContainerRunRootlessReleasesOnFailure(t *testing.T) {
	fake := useFakeExecutor(t)
	outputDir := t.TempDir()

	runFail := errors.New("exit status 101")
	fake.handler = func(cmd launcher.Command) ([]byte, error) {
		if strings.Contains(cmd.String(), " run ") {
			return nil, runFail
		}
		return nil, nil
	}

	run := &containerRun{
		mode:      ModeLambda,
		bin:       "mybin",
		launcher:  launcher.New("podman"),
		outputDir: outputDir,
		imageTag:  "aws-build-lambda-stable",
		codeRoot:  "/code/root",
	}

	_, err := run.run(context.Background())
	if !errors.Is(err, runFail) {
		t.Fatalf("err = %v, want the run failure", err)
	}

	// Ownership was still restored exactly once.
	var releases int
	for _, cmd := range fake.commands {
		if strings.Contains(cmd.String(), "chown --recursive 0:0") {
			releases++
		}
	}
	if releases != 1 {
		t.Fatalf("got %d release chowns, want 1", releases)
	}
}

func TestContainerRunNoRelabel(t *testing.T) {
	fake := useFakeExecutor(t)
	outputDir := t.TempDir()

	run := &containerRun{
		mode:      ModeAmazonLinux2,
		bin:       "mybin",
		launcher:  launcher.New("docker"),
		outputDir: outputDir,
		imageTag:  "aws-build-al2-stable",
		codeRoot:  "/code/root",
	}

	if _, err := run.run(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := fake.commands[0].String()
	if strings.Contains(got, ",z") || strings.Contains(got, ",Z") {
		t.Fatalf("run command %q carries a relabel option", got)
	}
	if !strings.Contains(got, "-v /code/root:/code:ro ") {
		t.Fatalf("run command %q missing the read-only code mount", got)
	}
}
