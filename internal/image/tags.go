package image

// Tag added to images marked as latest.
const latestTag = "latest"

// Builds the ordered, duplicate-free tag set.
//
// Each tag is followed by its release qualified variant: the primary
// version first, then the additional versions, then "latest".
func buildTagSet(version string, additional []string, latest bool) []string {
	base := make([]string, 0, len(additional)+2)
	base = append(base, version)
	base = append(base, additional...)
	if latest {
		base = append(base, latestTag)
	}

	seen := make(map[string]bool, 2*len(base))
	tags := make([]string, 0, 2*len(base))
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, v := range base {
		if v == "" {
			continue
		}
		add(v)
		add(v + "-" + PlaceholderRelease)
	}
	return tags
}
