package build

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/suse-bci/bcigen/internal/image"
)

func runArchive(t *testing.T, out string) *Package {
	t.Helper()

	def := testDefinition()
	def.ExtraFiles = map[string]string{"README.md": "# test\n"}

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{def},
		Output:      out,
		AllFormats:  true,
		Archive:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Packages) != 1 {
		t.Fatalf("packages = %d, want 1", len(result.Packages))
	}
	return &result.Packages[0]
}

func TestArchiveContents(t *testing.T) {
	out := t.TempDir()
	pkg := runArchive(t, out)

	if pkg.Archive == nil {
		t.Fatal("expected archive, got nil")
	}

	path := filepath.Join(out, "15.4", "test-image.tar")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := digest.FromBytes(content); got != pkg.Archive.Digest {
		t.Errorf("digest = %s, want %s", pkg.Archive.Digest, got)
	}
	if got := int64(len(content)); got != pkg.Archive.Size {
		t.Errorf("size = %d, want %d", pkg.Archive.Size, got)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	var names []string
	tr := tar.NewReader(f)
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names = append(names, h.Name)

		if !h.ModTime.Equal(time.Unix(0, 0)) {
			t.Errorf("%s: mtime = %v, want epoch", h.Name, h.ModTime)
		}
		if h.Uid != 0 || h.Gid != 0 || h.Uname != "" || h.Gname != "" {
			t.Errorf("%s: owner = %d:%d (%s:%s), want root", h.Name, h.Uid, h.Gid, h.Uname, h.Gname)
		}
	}

	want := []string{
		"test-image/",
		"test-image/Dockerfile",
		"test-image/README.md",
		"test-image/test-image.kiwi",
	}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestArchiveIsReproducible(t *testing.T) {
	first := runArchive(t, t.TempDir())
	second := runArchive(t, t.TempDir())

	if first.Archive.Digest != second.Archive.Digest {
		t.Errorf("digests differ: %s and %s", first.Archive.Digest, second.Archive.Digest)
	}
}

func TestArchiveFailureRemovesPackage(t *testing.T) {
	out := t.TempDir()
	blocker := filepath.Join(out, "15.4", "test-image.tar")
	if err := os.MkdirAll(blocker, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{testDefinition()},
		Output:      out,
		Archive:     true,
	})
	if !errors.Is(err, ErrArchive) {
		t.Fatalf("err = %v, want %v", err, ErrArchive)
	}
	if len(result.Packages) != 0 {
		t.Errorf("packages = %d, want 0", len(result.Packages))
	}
	if _, err := os.Stat(filepath.Join(out, "15.4", "test-image")); !os.IsNotExist(err) {
		t.Errorf("package directory left behind: %v", err)
	}
	if fi, err := os.Stat(blocker); err != nil || !fi.IsDir() {
		t.Errorf("existing path at archive destination was touched: %v", err)
	}
}

func TestArchiveFailureRemovesArchive(t *testing.T) {
	out := t.TempDir()
	dest := filepath.Join(out, "missing.tar")

	_, err := archivePackage(filepath.Join(out, "missing"), dest)
	if !errors.Is(err, ErrArchive) {
		t.Fatalf("err = %v, want %v", err, ErrArchive)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("partial archive left behind: %v", err)
	}
}
