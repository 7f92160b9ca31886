package cli

import (
	"context"
	"fmt"

	"github.com/awsbuild/awsbuild/internal/build"
	"github.com/awsbuild/awsbuild/internal/config"
	"github.com/awsbuild/awsbuild/internal/launcher"
	"github.com/awsbuild/awsbuild/internal/paths"
)

// Flags shared by the al2 and lambda subcommands.
type buildOptions struct {
	ContainerCmd string   `help:"Container command: docker, sudo-docker, or podman (auto-detected by default)." placeholder:"CMD"`
	RustVersion  string   `help:"Rust toolchain version, e.g. stable or 1.45.2." placeholder:"VERSION"`
	Strip        bool     `help:"Strip debug symbols from the built executable."`
	Bin          string   `help:"Binary target to build (required if the package has more than one)." placeholder:"NAME"`
	Package      []string `help:"Yum devel package to install in the build container (repeatable)." placeholder:"PKG"`
	CodeRoot     string   `help:"Root of the code mounted in the container (default: the project path)." placeholder:"PATH"`
	Relabel      string   `help:"Relabel files before bind-mounting: shared (z) or unshared (Z)." placeholder:"POLICY"`
	Project      string   `arg:"" optional:"" default:"." help:"Path of the project to build."`
}

// Represents the 'awsbuild al2' command.
type Al2Cmd struct {
	buildOptions
}

// Executes the al2 command.
func (c *Al2Cmd) Run(ctx context.Context) error {
	return c.run(ctx, build.ModeAmazonLinux2)
}

// Represents the 'awsbuild lambda' command.
type LambdaCmd struct {
	buildOptions
}

// Executes the lambda command.
func (c *LambdaCmd) Run(ctx context.Context) error {
	return c.run(ctx, build.ModeLambda)
}

// Assembles a builder from config-file defaults overlaid with flags and
// runs the build. On success the artifact and symlink paths are printed to
// stdout.
func (o *buildOptions) run(ctx context.Context, mode build.Mode) error {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return err
	}

	rustVersion := cfg.RustVersion
	if o.RustVersion != "" {
		rustVersion = o.RustVersion
	}

	containerCmd := cfg.ContainerCmd
	if o.ContainerCmd != "" {
		containerCmd = o.ContainerCmd
	}
	var l *launcher.Launcher
	if containerCmd != "" {
		l, err = launcher.FromName(containerCmd)
	} else {
		l, err = launcher.Detect()
	}
	if err != nil {
		return err
	}

	relabelSpec := cfg.Relabel
	if o.Relabel != "" {
		relabelSpec = o.Relabel
	}
	relabel, err := launcher.ParseRelabel(relabelSpec)
	if err != nil {
		return err
	}

	codeRoot := o.CodeRoot
	if codeRoot == "" {
		codeRoot = o.Project
	}

	builder := &build.Builder{
		RustVersion: rustVersion,
		Mode:        mode,
		Bin:         o.Bin,
		Strip:       o.Strip,
		Launcher:    l,
		CodeRoot:    codeRoot,
		ProjectPath: o.Project,
		Packages:    o.Package,
		Relabel:     relabel,
	}

	out, err := builder.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(out.Real)
	fmt.Println(out.Symlink)
	return nil
}
