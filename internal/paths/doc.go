// Provides platform-appropriate paths for the tool's own files.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The tool name "awsbuild" is used as the subdirectory
// under each base path. Build outputs do not live here; they are always
// placed under the project's own target directory.
package paths
