package build

import "fmt"

// Deployment target for a build. The set is closed: every mapping below
// switches over exactly these two values.
type Mode int

const (
	// Build for Amazon Linux 2. The result is a standalone executable that
	// can be copied to e.g. an EC2 instance running Amazon Linux 2.
	ModeAmazonLinux2 Mode = iota

	// Build for AWS Lambda running Amazon Linux 2. The result is a zip file
	// containing a single "bootstrap" executable.
	ModeLambda
)

// Returns the short mode token used to namespace cache directories, output
// directories, and generated names.
func (m Mode) Name() string {
	switch m {
	case ModeAmazonLinux2:
		return "al2"
	case ModeLambda:
		return "lambda"
	}
	panic(fmt.Sprintf("unknown build mode %d", int(m)))
}

// Returns the base container image the build image is derived from.
func (m Mode) BaseImage() string {
	switch m {
	case ModeAmazonLinux2:
		// https://hub.docker.com/_/amazonlinux
		return "docker.io/amazonlinux:2"
	case ModeLambda:
		// https://github.com/lambci/docker-lambda#documentation
		return "docker.io/lambci/lambda:build-provided.al2"
	}
	panic(fmt.Sprintf("unknown build mode %d", int(m)))
}

func (m Mode) String() string {
	return m.Name()
}
