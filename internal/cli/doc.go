// Parses flags and configures logging for the awsbuild tool.
//
// The command tree has one subcommand per build mode plus version:
//
//	awsbuild al2 [flags] [project]
//	awsbuild lambda [flags] [project]
//	awsbuild version
//
// Flag values override the optional per-user config file, which in turn
// overrides the built-in defaults. After parsing, the global logger is
// reconfigured to reflect the final level before the build starts.
package cli
