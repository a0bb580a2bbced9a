package catalog

import (
	"path"
	"slices"
	"strings"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/osversion"
)

const (
	// Disk size in GiB the kernel module development images need.
	kernelModuleDiskSize = 8

	disableGetty = "systemctl disable getty@tty1.service"
	fipsAssetURL = "https://api.opensuse.org/public/build/"
)

// Binaries of the certified FIPS 140-2 crypto modules.
var fipsBinaries = []string{
	"SUSE:SLE-15-SP2:Update/pool/x86_64/openssl-1_1.18804/openssl-1_1-1.1.1d-11.20.1.x86_64.rpm",
	"SUSE:SLE-15-SP2:Update/pool/x86_64/openssl-1_1.18804/libopenssl1_1-1.1.1d-11.20.1.x86_64.rpm",
	"SUSE:SLE-15-SP2:Update/pool/x86_64/openssl-1_1.18804/libopenssl1_1-hmac-1.1.1d-11.20.1.x86_64.rpm",
	"SUSE:SLE-15-SP1:Update/pool/x86_64/libgcrypt.15117/libgcrypt20-1.8.2-8.36.1.x86_64.rpm",
	"SUSE:SLE-15-SP1:Update/pool/x86_64/libgcrypt.15117/libgcrypt20-hmac-1.8.2-8.36.1.x86_64.rpm",
}

func baseImages() []image.Definition {
	var defs []image.Definition
	for _, osv := range osversion.Base() {
		defs = append(defs, micro(osv), initImage(osv), minimal(osv), busybox(osv))
	}
	defs = append(defs, fips(osversion.SP3))
	for _, osv := range []osversion.OsVersion{osversion.SP4, osversion.SP5, osversion.SP6, osversion.Basalt} {
		defs = append(defs, kernelModule(osv))
	}
	return defs
}

// Returns the release packages of an OS version.
func releasePackages(osv osversion.OsVersion) []string {
	switch osv {
	case osversion.Tumbleweed:
		return []string{"openSUSE-release", "openSUSE-release-appliance-docker"}
	case osversion.Basalt:
		return []string{"ALP-dummy-release"}
	default:
		return []string{"sles-release"}
	}
}

func isSLE(osv osversion.OsVersion) bool {
	return osv != osversion.Tumbleweed && osv != osversion.Basalt
}

// Returns the skeleton of an OS base image.
func osImage(name, pretty string, osv osversion.OsVersion) image.Definition {
	return image.Definition{
		Name:         name,
		PrettyName:   osv.ShortName() + " " + pretty,
		PackageName:  name + "-image",
		Stack:        image.StackOS,
		OsVersion:    osv,
		SupportLevel: image.SupportL3,
		IsLatest:     osv.CanBeLatest(),
	}
}

func micro(osv osversion.OsVersion) image.Definition {
	pkgs := []string{"bash", "ca-certificates-mozilla-prebuilt", "coreutils"}
	if isSLE(osv) {
		pkgs = append(pkgs, "skelcd-EULA-bci")
	}
	pkgs = append(pkgs, releasePackages(osv)...)

	def := osImage("micro", "Micro", osv)
	def.CustomDescription = "A micro environment for containers {based_on_container}."
	def.FromImage = image.Scratch
	def.BuildRecipeType = image.BuildKiwi
	def.PackageList = image.PackagesOfKind(image.PackageBootstrap, pkgs...)
	def.ConfigShScript = "\n"
	return def
}

func initImage(osv osversion.OsVersion) image.Definition {
	def := osImage("init", "Init", osv)
	def.CustomDescription = "Systemd environment for containers {based_on_container}. {podman_only}"
	def.PackageList = image.Packages("systemd", "gzip")
	def.Cmd = []string{"/usr/lib/systemd/systemd"}
	def.ExtraLabels = image.Labels{
		{Key: "usage", Value: "This container should only be used to build containers for daemons. Add your packages and enable services using systemctl."},
	}
	def.CustomEnd = `
RUN mkdir -p /etc/systemd/system.conf.d/ && \
    printf "[Manager]\nLogColor=no" > \
        /etc/systemd/system.conf.d/01-sle-bci-nocolor.conf
RUN ` + disableGetty + `
HEALTHCHECK --interval=5s --timeout=5s --retries=5 CMD ["/usr/bin/systemctl", "is-active", "multi-user.target"]
`
	return def
}

func minimal(osv osversion.OsVersion) image.Definition {
	pkgs := image.PackagesOfKind(image.PackageDelete, "grep", "diffutils", "info", "fillup", "libzio1")
	pkgs = append(pkgs, image.PackagesOfKind(image.PackageBootstrap, releasePackages(osv)...)...)
	if isSLE(osv) {
		// rpm still depends on perl in SLE 15
		pkgs = append(pkgs, image.PackagesOfKind(image.PackageBootstrap, "rpm-ndb", "perl-base")...)
	} else {
		pkgs = append(pkgs, image.PackagesOfKind(image.PackageBootstrap, "rpm")...)
	}

	def := osImage("minimal", "Minimal", osv)
	def.FromImage = osv.BuildTagPrefix() + "/bci-micro:" + osv.ContainerVersion()
	def.BuildRecipeType = image.BuildKiwi
	def.PackageList = pkgs
	def.ConfigShScript = `
#==========================================
# Remove compat-usrmerge-tools if installed
#------------------------------------------
if rpm -q compat-usrmerge-tools; then
    rpm -e compat-usrmerge-tools
fi
`
	return def
}

func busybox(osv osversion.OsVersion) image.Definition {
	pkgs := slices.Concat(releasePackages(osv), []string{"busybox", "busybox-links", "ca-certificates-mozilla-prebuilt"})

	def := osImage("busybox", "BusyBox", osv)
	def.FromImage = image.Scratch
	def.BuildRecipeType = image.BuildKiwi
	def.Cmd = []string{"/bin/sh"}
	def.PackageList = image.PackagesOfKind(image.PackageBootstrap, pkgs...)
	def.ConfigShScript = `
sed -i 's|/bin/bash|/bin/sh|' /etc/passwd
# Will be recreated by the next rpm(1) run as root user
rm -v /usr/lib/sysimage/rpm/Index.db
`
	def.ConfigShInterpreter = "/bin/sh"
	return def
}

func fips(osv osversion.OsVersion) image.Definition {
	var end strings.Builder
	for _, bin := range fipsBinaries {
		end.WriteString("#!RemoteAssetUrl: " + fipsAssetURL + bin + "\n")
		end.WriteString("COPY " + path.Base(bin) + " .\n")
	}
	end.WriteString(`RUN \
    [ $(LC_ALL=C rpm --checksig -v *rpm | \
        grep -c -E "^ *V3.*key ID 39db7c82: OK") = 5 ] \
    && rpm -Uvh --oldpackage *.rpm \
    && rm -vf *.rpm \
    && rpmqpack | grep -E '(openssl|libgcrypt)'  | xargs zypper -n addlock
ENV OPENSSL_FORCE_FIPS_MODE=1
`)

	def := osImage("base-fips", "FIPS-140-2", osv)
	def.ExclusiveArch = []osversion.Arch{osversion.ArchX86_64}
	def.PackageList = image.Packages("fipscheck")
	def.ExtraLabels = image.Labels{
		{Key: "usage", Value: "This container should only be used on a FIPS enabled host (fips=1 on kernel cmdline)."},
	}
	def.CustomEnd = end.String()
	return def
}

func kernelModule(osv osversion.OsVersion) image.Definition {
	prefix, pretty := "sle15", "SLE 15"
	if osv == osversion.Basalt {
		prefix, pretty = "basalt", "BASALT"
	}

	pkgs := []string{"kernel-devel", "kernel-syms", "gcc", "kmod-compat", "make", "patch", "awk"}
	if osv == osversion.SP4 {
		// not part of the SP4 base image
		pkgs = append(pkgs, "tar")
	}

	def := osImage(prefix+"-kernel-module-devel", "", osv)
	def.PrettyName = pretty + " Kernel Module Development"
	def.PackageName = prefix + "-kernel-module-devel"
	def.PackageList = image.Packages(pkgs...)
	def.ExtraFiles = diskConstraints(kernelModuleDiskSize)
	return def
}
