package build

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

func chownCommands(fake *fakeExecutor) []string {
	var chowns []string
	for _, cmd := range fake.commands {
		if strings.Contains(cmd.String(), "unshare chown") {
			chowns = append(chowns, cmd.String())
		}
	}
	return chowns
}

func TestPermissionGuardReleaseOnce(t *testing.T) {
	fake := useFakeExecutor(t)
	l := launcher.New("podman")

	guard, err := acquirePermissions(context.Background(), l, "/out")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(chownCommands(fake)); n != 1 {
		t.Fatalf("acquire ran %d chowns, want 1", n)
	}

	if err := guard.release(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Further releases, explicit or deferred, are no-ops.
	if err := guard.release(context.Background()); err != nil {
		t.Fatal(err)
	}
	guard.releaseQuiet(context.Background())

	chowns := chownCommands(fake)
	if len(chowns) != 2 {
		t.Fatalf("got %d chowns, want exactly 2 (acquire + release): %v", len(chowns), chowns)
	}
	if !strings.Contains(chowns[1], " 0:0 /out") {
		t.Fatalf("release chown = %q, want target 0:0", chowns[1])
	}
}

func TestPermissionGuardReleaseAfterFailureRetries(t *testing.T) {
	fake := useFakeExecutor(t)
	l := launcher.New("podman")

	guard, err := acquirePermissions(context.Background(), l, "/out")
	if err != nil {
		t.Fatal(err)
	}

	// First release attempt fails; the guard stays armed so the deferred
	// release can retry.
	fail := errors.New("chown failed")
	fake.handler = func(cmd launcher.Command) ([]byte, error) {
		return nil, fail
	}
	if err := guard.release(context.Background()); !errors.Is(err, fail) {
		t.Fatalf("release err = %v, want %v", err, fail)
	}

	fake.handler = nil
	if err := guard.release(context.Background()); err != nil {
		t.Fatalf("retried release failed: %v", err)
	}

	if n := len(chownCommands(fake)); n != 3 {
		t.Fatalf("got %d chowns, want 3 (acquire + failed release + retry)", n)
	}
}

func TestAcquirePermissionsError(t *testing.T) {
	fake := useFakeExecutor(t)
	fake.handler = func(cmd launcher.Command) ([]byte, error) {
		return nil, fmt.Errorf("denied")
	}

	if _, err := acquirePermissions(context.Background(), launcher.New("podman"), "/out"); err == nil {
		t.Fatal("expected an error")
	}
}
