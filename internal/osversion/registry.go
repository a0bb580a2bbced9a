package osversion

import (
	"strconv"
	"time"
)

const (
	suseVendor     = "SUSE LLC"
	suseURL        = "https://www.suse.com/products/server/"
	suseRegistry   = "registry.suse.com"
	suseLifecycle  = "https://www.suse.com/lifecycle#suse-linux-enterprise-server-15"
	sleBaseImage   = "SLE Base Container Image"
	sleEULA        = "sle-bci"
	sleImageType   = "sle-bci"
	sleLifecycle   = "lifecycle-data-sle-module-development-tools"
	opensuseVendor = "openSUSE Project"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sle(sp int, until time.Time, canBeLatest bool, lifecycle []string) Info {
	n := strconv.Itoa(sp)
	id := OsVersion("15." + n)
	return Info{
		ID:               id,
		PrettyName:       "SUSE Linux Enterprise Server 15 SP" + n,
		ShortName:        "SLE 15 SP" + n,
		DistributionName: "SLE BCI",
		BaseImageName:    sleBaseImage,
		Vendor:           suseVendor,
		URL:              suseURL,
		Registry:         suseRegistry,
		BuildTagPrefix:   "bci",
		LabelNamespace:   "com.suse",
		BaseImage:        "suse/sle15:" + string(id),
		LifecycleURL:     suseLifecycle,
		EULA:             sleEULA,
		ImageType:        sleImageType,
		SupportLabels:    true,
		SupportedUntil:   until,
		CanBeLatest:      canBeLatest,
		Archs:            AllArchs(),
		LifecyclePkgs:    lifecycle,
		ContainerVersion: string(id),
		KiwiVersion:      string(id) + ".0",
	}
}

var registry = map[OsVersion]Info{
	SP3: sle(3, date(2022, time.December, 31), false, nil),
	SP4: sle(4, date(2023, time.December, 31), false, []string{sleLifecycle}),
	SP5: sle(5, date(2024, time.December, 31), true, []string{sleLifecycle}),
	SP6: sle(6, date(2025, time.December, 31), false, []string{sleLifecycle}),
	Tumbleweed: {
		ID:               Tumbleweed,
		PrettyName:       "openSUSE Tumbleweed",
		ShortName:        "openSUSE Tumbleweed",
		DistributionName: "openSUSE Tumbleweed BCI",
		BaseImageName:    "openSUSE Tumbleweed Base Container Image",
		Vendor:           opensuseVendor,
		URL:              "https://www.opensuse.org",
		Registry:         "registry.opensuse.org",
		BuildTagPrefix:   "opensuse/bci",
		LabelNamespace:   "org.opensuse",
		BaseImage:        "opensuse/tumbleweed:latest",
		LifecycleURL:     "https://en.opensuse.org/Lifetime",
		CanBeLatest:      true,
		Archs:            AllArchs(),
		ContainerVersion: "latest",
		KiwiVersion:      "2023",
	},
	Basalt: {
		ID:               Basalt,
		PrettyName:       "Basalt Project",
		ShortName:        "Basalt Project",
		DistributionName: "Basalt Project BCI",
		BaseImageName:    "Basalt Project Base Container Image",
		Vendor:           suseVendor,
		URL:              "https://susealp.io/",
		Registry:         "registry.opensuse.org",
		BuildTagPrefix:   "alp/bci",
		LabelNamespace:   "com.suse",
		BaseImage:        "alp/bci/bci-base:latest",
		LifecycleURL:     "https://en.opensuse.org/Lifetime",
		CanBeLatest:      true,
		Archs:            []Arch{ArchX86_64, ArchAarch64},
		ContainerVersion: "latest",
		KiwiVersion:      "2023",
	},
}
