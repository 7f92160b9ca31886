package launcher

import (
	"strings"
	"testing"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		sudo     bool
		rootless bool
	}{
		{name: "docker", command: "docker"},
		{name: "sudo-docker", command: "docker", sudo: true},
		{name: "podman", command: "podman", rootless: true},
	}

	for _, tt := range tests {
		l, err := FromName(tt.name)
		if err != nil {
			t.Fatalf("FromName(%q): %v", tt.name, err)
		}
		if l.command != tt.command || l.sudo != tt.sudo {
			t.Fatalf("FromName(%q) = {%q sudo=%v}, want {%q sudo=%v}",
				tt.name, l.command, l.sudo, tt.command, tt.sudo)
		}
		if got := l.Name(); got != tt.name {
			t.Fatalf("Name() = %q, want %q", got, tt.name)
		}
		if got := l.IsRootless(); got != tt.rootless {
			t.Fatalf("IsRootless() = %v, want %v", got, tt.rootless)
		}
	}

	if _, err := FromName("lxc"); err == nil {
		t.Fatal("FromName(\"lxc\") expected an error")
	}
}

func TestSudoPrefix(t *testing.T) {
	l, err := FromName("sudo-docker")
	if err != nil {
		t.Fatalf("FromName: %v", err)
	}
	cmd := l.cmd("build", ".")
	if got := cmd.String(); got != "sudo docker build ." {
		t.Fatalf("command line = %q, want %q", got, "sudo docker build .")
	}
}

func TestBuildArgs(t *testing.T) {
	args := buildArgs(BuildOpt{
		Context: "/tmp/context",
		Tag:     "myimage",
		BuildArgs: [][2]string{
			{"FROM_IMAGE", "docker.io/amazonlinux:2"},
			{"RUST_VERSION", "stable"},
		},
	})
	want := "build --tag myimage" +
		" --build-arg FROM_IMAGE=docker.io/amazonlinux:2" +
		" --build-arg RUST_VERSION=stable" +
		" /tmp/context"
	if got := strings.Join(args, " "); got != want {
		t.Fatalf("buildArgs = %q, want %q", got, want)
	}
}

func TestRunArgs(t *testing.T) {
	args := runArgs(RunOpt{
		Remove: true,
		Init:   true,
		User:   "1000:1000",
		Env:    [][2]string{{"BIN_TARGET", "myapp"}},
		Volumes: []Volume{
			{Src: "/code", Dst: "/code", ReadWrite: false},
			{Src: "/out", Dst: "/code/target", ReadWrite: true, Options: []string{"z"}},
		},
		Image: "myimage",
	})
	want := "run --rm --init -u 1000:1000 -e BIN_TARGET=myapp" +
		" -v /code:/code:ro -v /out:/code/target:rw,z myimage"
	if got := strings.Join(args, " "); got != want {
		t.Fatalf("runArgs = %q, want %q", got, want)
	}
}

func TestRunArgsMinimal(t *testing.T) {
	args := runArgs(RunOpt{Image: "myimage"})
	if got := strings.Join(args, " "); got != "run myimage" {
		t.Fatalf("runArgs = %q, want %q", got, "run myimage")
	}
}
