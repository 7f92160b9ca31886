// Package launcher invokes a docker-compatible container runtime CLI.
//
// Every external process call is modeled uniformly as a [Command] (program,
// arguments, working directory, environment overrides) executed through an
// [Executor] that captures output. The package-level [Default] executor runs
// real processes; tests substitute a fake to observe the exact command lines
// without touching a runtime.
//
// A [Launcher] wraps one runtime command (docker or podman, optionally under
// sudo) and renders its build, run, and unshare-chown invocations. Rootless
// runtimes are detected so that callers can reconcile file ownership around
// container runs.
package launcher
