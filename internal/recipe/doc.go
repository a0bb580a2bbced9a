// Package recipe renders normalized image definitions into build recipes.
//
// Two formats are produced from the same [image.Normalized] value: a
// Dockerfile ([RenderDockerfile]) and a KIWI image description
// ([RenderKiwi]). Both read the tag set, label block, environment, ports,
// volumes and normal packages from the normalized value, so those facts
// always agree between the two outputs. The following are format specific:
//
//   - Bootstrap packages get their own phase in KIWI and are installed
//     inline with the other packages in a Dockerfile.
//   - Packages to delete only exist in KIWI. A Dockerfile cannot express
//     them and rendering fails with [ErrFormatIncapable].
//   - The config script is embedded in KIWI only; the custom end fragment
//     is appended to the Dockerfile only.
//
// Renderers are pure: the same input always yields byte-identical output,
// nothing is logged, and the input is never modified.
//
// The package also renders the build service auxiliaries: the _service file
// declaring the placeholder replacements ([RenderService]) and the
// _constraints file ([DiskSizeConstraints]).
//
// Example usage:
//
//	n, err := image.Normalize(def)
//	if err != nil {
//	    return err
//	}
//
//	dockerfile, err := recipe.RenderDockerfile(n)
//	if err != nil {
//	    return err
//	}
package recipe
