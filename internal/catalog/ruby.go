package catalog

import (
	"strings"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/osversion"
)

// Disk size in GiB the Ruby images need on a build worker.
const rubyDiskSize = 6

func rubyImages() []image.Definition {
	sp5 := ruby("2.5", osversion.SP5)
	sp5.SupportLevel = image.SupportL3
	sp6 := ruby("2.5", osversion.SP6)
	sp6.SupportLevel = image.SupportL3
	return []image.Definition{sp5, sp6, ruby("3.2", osversion.Tumbleweed)}
}

// Returns the definition of a Ruby image.
//
// Gem binaries are installed without the version suffix, as only one Ruby
// version ships per image.
func ruby(ver string, osv osversion.OsVersion) image.Definition {
	rb := "ruby" + ver
	major, _, _ := strings.Cut(ver, ".")

	return image.Definition{
		Name:               "ruby",
		PrettyName:         "Ruby " + ver,
		PackageName:        "ruby-" + ver + "-image",
		Version:            ver,
		AdditionalVersions: []string{major},
		IsLatest:           osv.CanBeLatest(),
		OsVersion:          osv,
		Env: map[string]any{
			"LANG":         "C.UTF-8",
			"RUBY_VERSION": "%%rb_ver%%",
			"RUBY_MAJOR":   "%%rb_maj%%",
		},
		ReplacementsViaService: []image.Replacement{
			{Token: "%%rb_ver%%", PackageName: rb},
			{Token: "%%rb_maj%%", PackageName: rb, ParseRule: image.ParseMinor},
		},
		PackageList: image.Packages(
			rb,
			rb+"-rubygem-bundler",
			rb+"-devel",
			// getopt for ruby-common
			"util-linux",
			"curl",
			"git-core",
			// native gem extensions
			"gcc-c++",
			"sqlite3-devel",
			"make",
			"awk",
			"timezone",
		),
		ExtraFiles:     diskConstraints(rubyDiskSize),
		ConfigShScript: "sed -i 's/--format-executable/--no-format-executable/' /etc/gemrc",
	}
}
