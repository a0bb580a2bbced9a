// Package build writes build packages for a batch of image definitions.
//
// Every definition is normalized and rendered on its own, in parallel, and
// written to a package directory named after its OS version and build
// package: <output>/<os>/<package_name>/. A package holds the recipe in the
// primary format of the image, the other format when requested, the
// _service file when the image declares placeholder replacements, and the
// extra files of the definition, untouched. Each written file is reported
// with its digest. Packages can additionally be bundled into a
// deterministic tar archive next to their directory.
//
// A failing record does not stop the batch. Its error is prefixed with the
// record identity and returned joined with the other failures once every
// record has been processed.
//
// Example usage:
//
//	result, err := build.Run(ctx, build.Options{
//	    Definitions: catalog.All(),
//	    Output:      "dist",
//	    AllFormats:  true,
//	    Jobs:        4,
//	})
//	if err != nil {
//	    return err
//	}
package build
