// Provides platform-appropriate default locations for the generator.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The binary name "bcigen" is used as the
// subdirectory under each base path.
package paths
