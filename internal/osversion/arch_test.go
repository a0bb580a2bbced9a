package osversion

import (
	"errors"
	"testing"
)

func TestParseArch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Arch
		wantErr bool
	}{
		{name: "build service name", input: "x86_64", want: ArchX86_64},
		{name: "oci name", input: "amd64", want: ArchX86_64},
		{name: "oci platform", input: "linux/arm64", want: ArchAarch64},
		{name: "oci platform with variant", input: "linux/arm64/v8", want: ArchAarch64},
		{name: "aarch64", input: "aarch64", want: ArchAarch64},
		{name: "s390x", input: "s390x", want: ArchS390x},
		{name: "ppc64le", input: " ppc64le ", want: ArchPpc64le},
		{name: "unsupported", input: "riscv64", wantErr: true},
		{name: "garbage", input: "not/a/valid/platform", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArch(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownArch) {
					t.Fatalf("err = %v, want ErrUnknownArch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlatformString(t *testing.T) {
	tests := map[Arch]string{
		ArchX86_64:  "linux/amd64",
		ArchAarch64: "linux/arm64",
		ArchS390x:   "linux/s390x",
		ArchPpc64le: "linux/ppc64le",
	}
	for arch, want := range tests {
		if got := arch.PlatformString(); got != want {
			t.Errorf("%q.PlatformString() = %q, want %q", arch, got, want)
		}
	}
}

func TestArchUnmarshalText(t *testing.T) {
	var a Arch
	if err := a.UnmarshalText([]byte("amd64")); err != nil {
		t.Fatal(err)
	}
	if a != ArchX86_64 {
		t.Fatalf("a = %q, want x86_64", a)
	}
	if err := a.UnmarshalText([]byte("mips")); err == nil {
		t.Fatal("expected error")
	}
}
