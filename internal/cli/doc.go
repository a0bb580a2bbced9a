// Parses flags, configures logging and runs the bcigen commands.
//
// The root command accepts the following flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//
// Commands:
//
//	render    Write build packages for the selected images.
//	list      Show the selected images with their tags and platforms.
//	version   Show version information.
//
// Images are selected from the built-in catalogue and from YAML definition
// files, then narrowed down with --os and --package. Flags override
// build-time defaults set via linker flags. After parsing, the global logger
// is reconfigured to reflect the final level and verbosity before the
// command runs.
package cli
