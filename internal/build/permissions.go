package build

import (
	"context"
	"log/slog"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

// Restores host-user ownership of a directory tree after a rootless
// container run.
//
// Rootless runtimes map the in-container root identity to the invoking host
// user, so files the container writes come out owned by a shifted uid unless
// the tree's ownership is reconciled around the run. A guard is created by
// [acquirePermissions] and must be released exactly once on every exit path:
// the caller releases explicitly to observe the error, and a deferred
// [permissionGuard.releaseQuiet] covers error returns and panics. Releasing
// an already-released guard is a no-op.
type permissionGuard struct {
	launcher *launcher.Launcher
	dir      string
	done     bool
}

// Recursively re-owns dir so that the container's mapped root user can write
// into it, and returns a guard that restores ownership to the host user.
//
// The chown target is the invoking user's uid:gid as seen inside the rootless
// namespace, which is what the container's root maps to.
func acquirePermissions(ctx context.Context, l *launcher.Launcher, dir string) (*permissionGuard, error) {
	if err := l.Chown(ctx, launcher.CurrentUser(), dir); err != nil {
		return nil, err
	}
	return &permissionGuard{launcher: l, dir: dir}, nil
}

// Restores ownership to the host user if not already done.
//
// Calling this explicitly is preferred to relying on the deferred release,
// because the error can be propagated. The identity "0:0" is the in-namespace
// root, which maps back to the invoking host user outside the namespace. The
// guard is marked done only on success so the deferred release can retry.
func (g *permissionGuard) release(ctx context.Context) error {
	if g.done {
		return nil
	}
	if err := g.launcher.Chown(ctx, launcher.RootUser, g.dir); err != nil {
		return err
	}
	g.done = true
	return nil
}

// Best-effort release for deferred execution.
//
// A failure here is a secondary error: it is logged but never overrides the
// primary result of the operation being cleaned up after.
func (g *permissionGuard) releaseQuiet(ctx context.Context) {
	if err := g.release(ctx); err != nil {
		slog.Error("failed to reset permissions", "dir", g.dir, "error", err)
	}
}
