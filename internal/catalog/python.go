package catalog

import (
	"strings"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/osversion"
)

// Python versions shipped on Tumbleweed. The last one is tagged latest.
var pythonTumbleweedVersions = []string{"3.9", "3.10", "3.11"}

// Python 3.11 is supported until the end of its upstream end-of-life year.
var python311SupportedUntil = image.NewDate(2027, 12, 31)

func pythonImages() []image.Definition {
	var defs []image.Definition

	for _, osv := range []osversion.OsVersion{osversion.SP5, osversion.SP6} {
		def := python("3.6", osv)
		def.SupportLevel = image.SupportL3
		defs = append(defs, def)
	}

	sp4 := python("3.10", osversion.SP4)
	sp4.SupportLevel = image.SupportL3
	if info, err := osversion.SP4.Lookup(); err == nil {
		sp4.SupportedUntil = image.DateOf(info.SupportedUntil)
	}
	defs = append(defs, sp4)

	for _, osv := range []osversion.OsVersion{osversion.SP5, osversion.SP6} {
		def := python("3.11", osv)
		def.SupportLevel = image.SupportL3
		def.SupportedUntil = python311SupportedUntil
		def.IsLatest = osv.CanBeLatest()
		defs = append(defs, def)
	}

	for i, ver := range pythonTumbleweedVersions {
		def := python(ver, osversion.Tumbleweed)
		def.IsLatest = i == len(pythonTumbleweedVersions)-1
		defs = append(defs, def)
	}

	return defs
}

// Returns the definition of a Python development image.
//
// The system interpreter (3.6 on SLE, 3.11 on Tumbleweed) is packaged as
// python3 on SLE. Other versions are linked into /usr/local/bin.
func python(ver string, osv osversion.OsVersion) image.Definition {
	system := "3.6"
	if osv == osversion.Tumbleweed {
		system = "3.11"
	}
	isSystem := ver == system
	nodots := strings.ReplaceAll(ver, ".", "")

	py3 := "python" + nodots
	if isSystem && osv != osversion.Tumbleweed {
		py3 = "python3"
	}
	pip3 := py3 + "-pip"
	verToken := "%%py" + nodots + "_ver%%"
	pipToken := "%%pip_ver%%"

	pkgs := []string{py3 + "-devel", py3, pip3, "curl", "git-core"}
	if isSystem || osv == osversion.Tumbleweed {
		pkgs = append(pkgs, py3+"-wheel")
	}
	if osv == osversion.Tumbleweed {
		pkgs = append(pkgs, py3+"-pipx")
	}

	script := "install -d -m 0755 /root/.local/bin"
	if !isSystem {
		script += "; ln -s /usr/bin/python" + ver + " /usr/local/bin/python3; \\\n" +
			"    ln -s /usr/bin/pydoc" + ver + " /usr/local/bin/pydoc"
	}

	return image.Definition{
		Name:               "python",
		PrettyName:         "Python " + ver + " development",
		PackageName:        "python-" + ver + "-image",
		Version:            ver,
		AdditionalVersions: []string{"3"},
		OsVersion:          osv,
		Env: map[string]any{
			"PYTHON_VERSION": verToken,
			"PATH":           "$PATH:/root/.local/bin",
			"PIP_VERSION":    pipToken,
		},
		PackageList: withLifecycle(osv, pkgs...),
		ReplacementsViaService: []image.Replacement{
			{Token: verToken, PackageName: py3 + "-base"},
			{Token: pipToken, PackageName: pip3},
		},
		ConfigShScript: script,
	}
}
