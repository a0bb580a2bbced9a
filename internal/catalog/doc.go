// Package catalog holds the image definitions maintained by the generator.
//
// The catalogue covers the Python and Ruby language stack images and the OS
// base images (micro, init, minimal, busybox, FIPS and kernel module
// development) across the supported OS versions. Every definition is plain
// data; callers normalize and render them like any externally loaded
// definition.
//
// Example usage:
//
//	defs := catalog.Select(catalog.All(), catalog.Filter{
//	    OsVersions: []osversion.OsVersion{osversion.SP5},
//	})
package catalog
