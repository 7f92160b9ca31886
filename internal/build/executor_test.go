package build

import (
	"context"
	"testing"

	"github.com/awsbuild/awsbuild/internal/launcher"
)

// Records every command and answers through an optional handler. Commands
// without a handler succeed with empty output.
type fakeExecutor struct {
	commands []launcher.Command
	handler  func(cmd launcher.Command) ([]byte, error)
}

func (f *fakeExecutor) Output(ctx context.Context, cmd launcher.Command) ([]byte, error) {
	return f.record(cmd)
}

func (f *fakeExecutor) CombinedOutput(ctx context.Context, cmd launcher.Command) ([]byte, error) {
	return f.record(cmd)
}

func (f *fakeExecutor) record(cmd launcher.Command) ([]byte, error) {
	f.commands = append(f.commands, cmd)
	if f.handler != nil {
		return f.handler(cmd)
	}
	return nil, nil
}

// Installs a fake executor for the duration of the test.
func useFakeExecutor(t *testing.T) *fakeExecutor {
	t.Helper()
	fake := &fakeExecutor{}
	orig := launcher.Default
	launcher.Default = fake
	t.Cleanup(func() { launcher.Default = orig })
	return fake
}
