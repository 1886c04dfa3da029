package emu

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/fsutil"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// SecureStorage mounts archive directories under <root>/archives.
type SecureStorage struct {
	fs   afero.Fs
	root string

	mu      sync.Mutex
	mounted afero.Fs
}

var _ types.SecureStorage = (*SecureStorage)(nil)

// NewSecureStorage returns a SecureStorage over root.
func NewSecureStorage(fs afero.Fs, root string) *SecureStorage {
	return &SecureStorage{fs: fs, root: root}
}

// ArchiveDir returns the host directory that backs the archive.
func (s *SecureStorage) ArchiveDir(kind types.ArchiveKind, path types.BinaryPath) string {
	return filepath.Join(s.root, "archives", kind.String(), hex.EncodeToString(path))
}

// Mount opens the archive. A second mount before Unmount fails.
func (s *SecureStorage) Mount(kind types.ArchiveKind, path types.BinaryPath) (afero.Fs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted != nil {
		return nil, &types.DeviceError{Op: "mount", Code: codeBusy}
	}
	dir := s.ArchiveDir(kind, path)
	if !fsutil.DirectoryExists(s.fs, dir) {
		logger.Debugf("no archive at %s", dir)
		return nil, &types.DeviceError{Op: "mount", Code: codeNotFound}
	}
	s.mounted = afero.NewBasePathFs(s.fs, dir)
	logger.Tracef("mounted %s", dir)
	return s.mounted, nil
}

// Unmount closes the mounted archive.
func (s *SecureStorage) Unmount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted == nil {
		return &types.DeviceError{Op: "unmount", Code: codeNotMounted}
	}
	s.mounted = nil
	return nil
}

// Commit is a no-op beyond checking that an archive is mounted; writes reach
// the host directory immediately.
func (s *SecureStorage) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted == nil {
		return &types.DeviceError{Op: "commit", Code: codeNotMounted}
	}
	return nil
}

func (s *SecureStorage) secureValuePath(key uint64) string {
	return filepath.Join(s.root, "securevalues", fmt.Sprintf("%016X", key))
}

// SetSecureValue records a secure value for key.
func (s *SecureStorage) SetSecureValue(key uint64) error {
	path := s.secureValuePath(key)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, path, nil, 0o644)
}

// HasSecureValue reports whether a secure value is recorded for key.
func (s *SecureStorage) HasSecureValue(key uint64) bool {
	ok, err := afero.Exists(s.fs, s.secureValuePath(key))
	return err == nil && ok
}

// DeleteSecureValue erases the record for key. Erasing an absent record
// succeeds.
func (s *SecureStorage) DeleteSecureValue(key uint64) error {
	if err := s.fs.Remove(s.secureValuePath(key)); err != nil && !os.IsNotExist(err) {
		return &types.DeviceError{Op: "delete secure value", Code: codeWriteFailure}
	}
	return nil
}
