// Package layout decides where backups live on disk:
//
//	<root>/saves/0xNNNNN <name>/<folder>/
//	<root>/extdata/0xNNNNN <name>/<folder>/
//
// where NNNNN is the title's unique id and name its short description with
// characters that are not valid in FAT file names removed.
package layout

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/clock"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

const (
	savesDirName   = "saves"
	extdataDirName = "extdata"

	// BackupNameFormat is the time layout of generated backup folder names.
	BackupNameFormat = "20060102-150405"

	// GBASaveFile is the file name of a GBA virtual-console backup.
	GBASaveFile = "00000001.sav"
)

const forbidden = `.,!\/:?*"<>|`

// Layout resolves backup directories below Root.
type Layout struct {
	Root string
}

// New returns a Layout rooted at root.
func New(root string) Layout {
	return Layout{Root: root}
}

// SaveBackupsDir returns the default directory of the title's save backups.
func (l Layout) SaveBackupsDir(info types.TitleInfo) string {
	return filepath.Join(l.Root, savesDirName, titleDirName(info))
}

// ExtdataBackupsDir returns the default directory of the title's extdata backups.
func (l Layout) ExtdataBackupsDir(info types.TitleInfo) string {
	return filepath.Join(l.Root, extdataDirName, titleDirName(info))
}

// BackupsDir returns the default directory for the given medium kind.
func (l Layout) BackupsDir(info types.TitleInfo, kind types.MediumKind) string {
	if kind.IsExtdata() {
		return l.ExtdataBackupsDir(info)
	}
	return l.SaveBackupsDir(info)
}

func titleDirName(info types.TitleInfo) string {
	name := SafeName(info.ShortDesc)
	if name == "" {
		name = SafeName(info.ProductCode)
	}
	return strings.TrimSpace(fmt.Sprintf("0x%05X %s", info.UniqueID(), name))
}

// SafeName normalizes s to NFC and drops characters that cannot appear in a
// file name on the console's SD card.
func SafeName(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || strings.ContainsRune(forbidden, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// DSSaveFile returns the file name of a DS cartridge backup.
func DSSaveFile(info types.TitleInfo) string {
	name := SafeName(info.ShortDesc)
	if name == "" {
		name = info.HexID()
	}
	return name + ".sav"
}

// NewBackupName returns a folder name derived from the current time.
func NewBackupName(clk clock.Clock) string {
	return clk.Now().Format(BackupNameFormat)
}

// ParseBackupName reports the time encoded in a generated folder name.
func ParseBackupName(name string) (time.Time, bool) {
	t, err := time.ParseInLocation(BackupNameFormat, name, time.Local)
	return t, err == nil
}
