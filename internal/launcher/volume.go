package launcher

import (
	"fmt"
	"strings"
)

// SELinux relabeling policy for bind mounts.
//
// Relabeling overwrites the current label on files on the host. Applying it
// to a system directory like /usr can make the host unusable.
type Relabel int

const (
	// Do not relabel. The default.
	RelabelNone Relabel = iota

	// Mount volumes with the "z" option. Multiple containers may access the
	// mount concurrently.
	RelabelShared

	// Mount volumes with the "Z" option. The label grants access to exactly
	// one container.
	RelabelUnshared
)

// Parses a relabel policy from its CLI or config spelling. Accepts "z" or
// "shared", "Z" or "unshared", and the empty string for none.
func ParseRelabel(s string) (Relabel, error) {
	switch s {
	case "":
		return RelabelNone, nil
	case "z", "shared":
		return RelabelShared, nil
	case "Z", "unshared":
		return RelabelUnshared, nil
	}
	return RelabelNone, fmt.Errorf("invalid relabel option %q", s)
}

// Returns the mount options the policy adds to each volume.
func (r Relabel) MountOptions() []string {
	switch r {
	case RelabelShared:
		return []string{"z"}
	case RelabelUnshared:
		return []string{"Z"}
	}
	return nil
}

// A bind mount passed to the container runtime's run command.
type Volume struct {
	Src       string   // Host path.
	Dst       string   // Path inside the container.
	ReadWrite bool     // Mount read-write instead of read-only.
	Options   []string // Extra mount options, e.g. a relabel option.
}

// Renders the volume as a -v argument value.
//
// The form is "src:dst:mode[,option...]", e.g. "/src:/dst:ro" or
// "/src:/dst:rw,Z".
func (v Volume) Arg() string {
	mode := "ro"
	if v.ReadWrite {
		mode = "rw"
	}
	opts := append([]string{mode}, v.Options...)
	return v.Src + ":" + v.Dst + ":" + strings.Join(opts, ",")
}
