package build

import (
	"archive/tar"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/suse-bci/bcigen/internal/paths"
)

// Modification time of every archive entry.
var archiveEpoch = time.Unix(0, 0).UTC()

// Bundles a package directory into a tar archive.
//
// Entries are rooted at the directory base name and written in lexical
// order with fixed ownership, permissions and timestamps, so the same
// package always yields the same archive. A failed archive is removed.
func archivePackage(dir, dest string) (_ *Artifact, err error) {
	slog.Debug("archiving package", "dir", dir, "dest", dest)

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, paths.DefaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(dest)
		}
	}()

	digester := digest.Canonical.Digester()
	counter := &countingWriter{w: io.MultiWriter(f, digester.Hash())}

	tw := tar.NewWriter(counter)
	if err := writeDirToTar(tw, dir, filepath.Base(dir)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}

	return &Artifact{
		Name:   filepath.Base(dest),
		Size:   counter.n,
		Digest: digester.Digest(),
	}, nil
}

// Writes a directory tree to a tar writer rooted at the given archive prefix.
func writeDirToTar(tw *tar.Writer, hostDir, prefix string) error {
	return filepath.WalkDir(hostDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(hostDir, path)
		if err != nil {
			return err
		}

		archivePath := filepath.ToSlash(filepath.Join(prefix, relPath))
		return writeTarEntry(tw, path, archivePath, d)
	})
}

// Writes a single file or directory entry to a tar writer.
func writeTarEntry(tw *tar.Writer, hostPath, archivePath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	normalizeHeader(header)
	header.Name = archivePath
	if info.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if info.Mode().IsRegular() {
		f, err := os.Open(hostPath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	}

	return nil
}

// Strips host specific metadata from a header.
func normalizeHeader(h *tar.Header) {
	h.Uid, h.Gid = 0, 0
	h.Uname, h.Gname = "", ""
	h.ModTime = archiveEpoch
	h.AccessTime = time.Time{}
	h.ChangeTime = time.Time{}
	h.Format = tar.FormatPAX
	h.PAXRecords = nil
	if h.Typeflag == tar.TypeDir {
		h.Mode = int64(paths.DefaultDirMode)
	} else {
		h.Mode = int64(paths.DefaultFileMode)
	}
}

// Counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
