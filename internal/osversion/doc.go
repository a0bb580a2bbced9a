// Package osversion is the registry of operating system versions that images
// can be built on.
//
// An [OsVersion] is an opaque identifier. Everything the generator needs to
// know about a version (display names, vendor and registry, lifecycle dates,
// architectures, whether it may carry the "latest" tag) is looked up from a
// static table through [OsVersion.Lookup]. The registry owns no logic beyond
// that lookup.
//
// Example usage:
//
//	info, err := osversion.SP5.Lookup()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.PrettyName, info.BaseImage)
package osversion
