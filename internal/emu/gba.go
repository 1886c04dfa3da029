package emu

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// GBAFlash keeps one save per GBA virtual-console title under <root>/gbavc.
// A title whose file does not exist has never been saved.
type GBAFlash struct {
	fs  afero.Fs
	dir string
}

var _ types.GBAFlash = (*GBAFlash)(nil)

// NewGBAFlash returns a GBAFlash over root.
func NewGBAFlash(fs afero.Fs, root string) *GBAFlash {
	return &GBAFlash{fs: fs, dir: filepath.Join(root, "gbavc")}
}

// SavePath returns the host file holding the title's save.
func (g *GBAFlash) SavePath(lowID, highID uint32) string {
	return filepath.Join(g.dir, fmt.Sprintf("%08X%08X.sav", highID, lowID))
}

// MostRecentSlot returns the title's save, or nil if it was never saved.
func (g *GBAFlash) MostRecentSlot(lowID, highID uint32, media types.MediaType) []byte {
	data, err := afero.ReadFile(g.fs, g.SavePath(lowID, highID))
	if err != nil {
		logger.Tracef("gba slot %08X%08X on %s: %v", highID, lowID, media, err)
		return nil
	}
	return data
}

// WriteBackup replaces the title's save with data. It reports false when the
// title was never saved.
func (g *GBAFlash) WriteBackup(lowID, highID uint32, media types.MediaType, data []byte) bool {
	path := g.SavePath(lowID, highID)
	if ok, err := afero.Exists(g.fs, path); err != nil || !ok {
		return false
	}
	if err := afero.WriteFile(g.fs, path, data, 0o644); err != nil {
		logger.Warningf("writing gba save %s: %v", path, err)
		return false
	}
	return true
}
