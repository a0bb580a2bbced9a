package osversion

import (
	"errors"
	"testing"

	"github.com/containerd/errdefs"
)

func TestLookup(t *testing.T) {
	for _, v := range All() {
		info, err := v.Lookup()
		if err != nil {
			t.Fatalf("Lookup(%q): %v", v, err)
		}
		if info.ID != v {
			t.Fatalf("info.ID = %q, want %q", info.ID, v)
		}
		if info.BuildTagPrefix == "" || info.Registry == "" || info.Vendor == "" {
			t.Fatalf("%q: incomplete registry entry %+v", v, info)
		}
		if len(info.Archs) == 0 {
			t.Fatalf("%q: no architectures", v)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := OsVersion("42").Lookup()
	if !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("err = %v, want ErrUnknownVersion", err)
	}
	if !errdefs.IsNotFound(err) {
		t.Fatalf("err = %v, want errdefs not found", err)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	a, _ := SP5.Lookup()
	a.Archs[0] = "mutated"
	a.LifecyclePkgs = append(a.LifecyclePkgs[:0], "mutated")

	b, _ := SP5.Lookup()
	if b.Archs[0] != ArchX86_64 {
		t.Fatalf("registry aliased: Archs[0] = %q", b.Archs[0])
	}
	if b.LifecyclePkgs[0] != sleLifecycle {
		t.Fatalf("registry aliased: LifecyclePkgs[0] = %q", b.LifecyclePkgs[0])
	}
}

func TestSLEMetadata(t *testing.T) {
	info, err := SP4.Lookup()
	if err != nil {
		t.Fatal(err)
	}
	if info.BaseImage != "suse/sle15:15.4" {
		t.Fatalf("BaseImage = %q", info.BaseImage)
	}
	if info.KiwiVersion != "15.4.0" {
		t.Fatalf("KiwiVersion = %q", info.KiwiVersion)
	}
	if !info.IsSLE() {
		t.Fatal("SP4 should be SLE")
	}
	if SP4.ShortName() != "SLE 15 SP4" {
		t.Fatalf("ShortName = %q", SP4.ShortName())
	}
}

func TestLatest(t *testing.T) {
	for _, v := range Latest() {
		if !v.CanBeLatest() {
			t.Fatalf("%q listed as latest but CanBeLatest is false", v)
		}
	}
	if SP4.CanBeLatest() {
		t.Fatal("SP4 must not be latest")
	}
}

func TestParse(t *testing.T) {
	v, err := Parse("Tumbleweed")
	if err != nil || v != Tumbleweed {
		t.Fatalf("Parse = %q, %v", v, err)
	}
	if _, err := Parse("tumbleweed"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}
