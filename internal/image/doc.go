// Package image defines the declarative description of a container image and
// the normalization that turns it into the canonical form renderers consume.
//
// A [Definition] is built once by catalogue code (or decoded from YAML with
// [LoadDefinitions]) for one OS version and language version combination.
// [Normalize] validates it and derives everything both build recipe formats
// need: the tag set, the label block and its prefix, the package partitions,
// the architecture restriction. The resulting [Normalized] value owns deep
// copies of every list and map of the definition, so mutating the
// definition afterwards does not affect it, and it is never modified by the
// renderers. Any number of goroutines may render the same value.
//
// Example usage:
//
//	n, err := image.Normalize(image.Definition{
//	    Name:        "test",
//	    PackageName: "test-image",
//	    Version:     "28",
//	    OsVersion:   osversion.SP4,
//	    PackageList: image.Packages("gcc", "emacs"),
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(n.BuildTags)
package image
