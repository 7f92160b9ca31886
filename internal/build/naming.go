package build

import (
	"fmt"
	"time"

	"github.com/opencontainers/go-digest"
)

// Number of hex characters of the content digest kept in generated names.
// Truncated so that file names stay greppable and reasonably short; the
// date and binary name namespace the hash, so the collision risk of the
// shortened prefix is acceptable.
const hashLength = 16

// Creates a unique output file name.
//
// The name is intended to be identifiable, sortable by time, unique, and
// reasonably short. To make this it includes:
//   - build-mode token (al2 or lambda)
//   - executable name
//   - year, month, and day
//   - first 16 digits of the sha256 hex hash of the contents
func uniqueName(mode Mode, name string, contents []byte, when time.Time) string {
	return mode.Name() + "-" + stampedName(name, contents, when)
}

// Creates the date/hash stamped portion of a unique name, without the mode
// token: "<name>-<YYYYMMDD>-<16 hex chars>".
func stampedName(name string, contents []byte, when time.Time) string {
	hash := digest.SHA256.FromBytes(contents).Encoded()
	return fmt.Sprintf("%s-%s-%s", name, when.Format("20060102"), hash[:hashLength])
}
