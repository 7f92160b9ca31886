// Package build orchestrates a containerized Rust build end to end.
//
// A [Builder] describes one build: the deployment mode (Amazon Linux 2 or
// AWS Lambda), the project and code-root paths, the toolchain version, and
// the container launcher. [Builder.Run] validates the configuration, builds
// a mode-specific container image from embedded templates, compiles the
// project inside an ephemeral container with host-mounted dependency caches,
// and packages the result under a content-derived unique name with a
// latest-<mode> symlink pointing at it.
//
// Container operations are delegated to the launcher package. For rootless
// runtimes the output directory's ownership is reconciled around the
// container run and restored on every exit path.
//
// Example usage:
//
//	builder := &build.Builder{
//	    RustVersion: "stable",
//	    Mode:        build.ModeLambda,
//	    Launcher:    launcher.New("podman"),
//	    CodeRoot:    ".",
//	    ProjectPath: ".",
//	}
//	out, err := builder.Run(ctx)
//	if err != nil {
//	    return err
//	}
package build
