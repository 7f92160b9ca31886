package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Identity passed to chown and to the run command's user mapping, rendered
// as "uid:gid".
const RootUser = "0:0"

// Returns the invoking user's identity as "uid:gid".
func CurrentUser() string {
	return fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
}

// Invokes a docker-compatible container runtime CLI.
//
// The zero value is not usable; construct one with [New], [FromName], or
// [Detect]. A launcher is safe to share between builds.
type Launcher struct {
	command string // The runtime CLI, "docker" or "podman".
	sudo    bool   // Run the CLI under sudo.
}

// Creates a launcher for the given runtime command.
func New(command string) *Launcher {
	return &Launcher{command: command}
}

// Resolves a launcher from its CLI spelling: "docker", "sudo-docker", or
// "podman".
func FromName(name string) (*Launcher, error) {
	switch name {
	case "docker":
		return &Launcher{command: "docker"}, nil
	case "sudo-docker":
		return &Launcher{command: "docker", sudo: true}, nil
	case "podman":
		return &Launcher{command: "podman"}, nil
	}
	return nil, fmt.Errorf("invalid container command %q", name)
}

// Finds a container runtime on PATH, preferring docker over podman.
func Detect() (*Launcher, error) {
	for _, name := range []string{"docker", "podman"} {
		if _, err := exec.LookPath(name); err == nil {
			return &Launcher{command: name}, nil
		}
	}
	return nil, errors.New("no container runtime found on PATH")
}

// Returns the runtime command name, including a "sudo-" prefix when the
// launcher runs under sudo.
func (l *Launcher) Name() string {
	if l.sudo {
		return "sudo-" + l.command
	}
	return l.command
}

// Whether the runtime runs containers without host root privileges.
//
// Rootless runtimes map the in-container root identity to the invoking host
// user, so output directories need their ownership reconciled around each
// run.
func (l *Launcher) IsRootless() bool {
	return l.command == "podman"
}

// Options for the runtime's image build command.
type BuildOpt struct {
	Context   string      // Build context directory.
	Tag       string      // Image tag.
	BuildArgs [][2]string // Ordered build-arg key/value pairs.
}

// Options for the runtime's container run command.
type RunOpt struct {
	Remove  bool        // Remove the container on exit (--rm).
	Init    bool        // Run an init process (--init).
	User    string      // "uid:gid" identity mapped inside the container.
	Env     [][2]string // Ordered environment variable key/value pairs.
	Volumes []Volume    // Bind mounts, passed in order.
	Image   string      // Image tag to run.
}

// Builds an image and returns the combined build output.
func (l *Launcher) BuildImage(ctx context.Context, opt BuildOpt) ([]byte, error) {
	return Run(ctx, l.cmd(buildArgs(opt)...))
}

// Runs a container to completion and returns the combined output.
func (l *Launcher) RunContainer(ctx context.Context, opt RunOpt) ([]byte, error) {
	return Run(ctx, l.cmd(runArgs(opt)...))
}

// Recursively changes ownership of dir, interpreting user ("uid:gid") inside
// the runtime's user namespace. An input of "0:0" is the invoking host user
// as seen from outside the namespace.
func (l *Launcher) Chown(ctx context.Context, user, dir string) error {
	_, err := Run(ctx, l.cmd("unshare", "chown", "--recursive", user, dir))
	return err
}

// Builds a [Command] for the runtime CLI, prefixing sudo when configured.
func (l *Launcher) cmd(args ...string) Command {
	if l.sudo {
		return Command{Name: "sudo", Args: append([]string{l.command}, args...)}
	}
	return Command{Name: l.command, Args: args}
}

// Renders the argument list for an image build.
func buildArgs(opt BuildOpt) []string {
	args := []string{"build", "--tag", opt.Tag}
	for _, kv := range opt.BuildArgs {
		args = append(args, "--build-arg", kv[0]+"="+kv[1])
	}
	return append(args, opt.Context)
}

// Renders the argument list for a container run.
func runArgs(opt RunOpt) []string {
	args := []string{"run"}
	if opt.Remove {
		args = append(args, "--rm")
	}
	if opt.Init {
		args = append(args, "--init")
	}
	if opt.User != "" {
		args = append(args, "-u", opt.User)
	}
	for _, kv := range opt.Env {
		args = append(args, "-e", kv[0]+"="+kv[1])
	}
	for _, v := range opt.Volumes {
		args = append(args, "-v", v.Arg())
	}
	return append(args, opt.Image)
}
