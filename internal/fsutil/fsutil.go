// Package fsutil provides the directory helpers the drivers and the engine
// use on both the backups tree and mounted containers. Every helper takes an
// afero.Fs so that a container mounted by SecureStorage and the host
// backups tree are handled the same way.
package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DirectoryExists reports whether path exists and is a directory.
func DirectoryExists(fs afero.Fs, path string) bool {
	ok, err := afero.DirExists(fs, path)
	return err == nil && ok
}

// CreateDirectory creates path and any missing parents.
func CreateDirectory(fs afero.Fs, path string) error {
	return errors.Annotatef(fs.MkdirAll(path, dirPerm), "creating %s", path)
}

// DeleteFolderRecursively removes path and everything below it.
func DeleteFolderRecursively(fs afero.Fs, path string) error {
	if _, err := fs.Stat(path); err != nil {
		return errors.Annotatef(err, "deleting %s", path)
	}
	return errors.Annotatef(fs.RemoveAll(path), "deleting %s", path)
}

// Recreate deletes dir if it exists and creates it again empty.
func Recreate(fs afero.Fs, dir string) error {
	if DirectoryExists(fs, dir) {
		if err := DeleteFolderRecursively(fs, dir); err != nil {
			return errors.Trace(err)
		}
	}
	return CreateDirectory(fs, dir)
}

// ClearDirectory removes every entry below dir but keeps dir itself.
func ClearDirectory(fs afero.Fs, dir string) error {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return errors.Annotatef(err, "listing %s", dir)
	}
	for _, e := range entries {
		if err := fs.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return errors.Annotatef(err, "clearing %s", dir)
		}
	}
	return nil
}

// CopyDirectory mirrors the tree at src on srcFs into dst on dstFs. Existing
// files at the destination are overwritten; files that exist only at the
// destination are left alone.
func CopyDirectory(srcFs afero.Fs, src string, dstFs afero.Fs, dst string) error {
	return afero.Walk(srcFs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Annotatef(err, "walking %s", path)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Trace(err)
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return CreateDirectory(dstFs, target)
		}
		return CopyFile(srcFs, path, dstFs, target)
	})
}

// CopyFile copies one file between filesystems.
func CopyFile(srcFs afero.Fs, src string, dstFs afero.Fs, dst string) error {
	in, err := srcFs.Open(src)
	if err != nil {
		return errors.Annotatef(err, "opening %s", src)
	}
	defer in.Close()

	out, err := dstFs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return errors.Annotatef(err, "creating %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Annotatef(err, "copying %s", src)
	}
	return errors.Annotatef(out.Close(), "closing %s", dst)
}

// DirSize returns the total size in bytes of the files below path.
func DirSize(fs afero.Fs, path string) (int64, error) {
	var size int64
	err := afero.Walk(fs, path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, errors.Trace(err)
}

// Subdirectories returns the names of the directories directly below path.
// A missing path yields no names and no error.
func Subdirectories(fs afero.Fs, path string) ([]string, error) {
	if !DirectoryExists(fs, path) {
		return nil, nil
	}
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil, errors.Annotatef(err, "listing %s", path)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
