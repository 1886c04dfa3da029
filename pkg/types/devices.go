package types

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// ArchiveKind selects which kind of container SecureStorage mounts.
type ArchiveKind uint32

// Archive kinds.
const (
	ArchiveExtdata        ArchiveKind = 0x00000006
	ArchiveSystemSavedata ArchiveKind = 0x00000008
	ArchiveUserSavedata   ArchiveKind = 0x567890B2
)

func (k ArchiveKind) String() string {
	switch k {
	case ArchiveExtdata:
		return "extdata"
	case ArchiveSystemSavedata:
		return "system-savedata"
	case ArchiveUserSavedata:
		return "user-savedata"
	default:
		return fmt.Sprintf("archive-%08x", uint32(k))
	}
}

// SecureValueSlotSD is the secure value slot used by SD titles.
const SecureValueSlotSD = 0x1000

// BinaryPath is the binary lowpath that keys a container, built from
// little-endian 32-bit words.
type BinaryPath []byte

// NewBinaryPath encodes words as a little-endian binary path.
func NewBinaryPath(words ...uint32) BinaryPath {
	p := make(BinaryPath, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(p[4*i:], w)
	}
	return p
}

// SaveArchive returns the archive kind and binary path that key the title's
// save container. NAND system titles use the 8-byte system save path, all
// other titles the 12-byte user save path.
func SaveArchive(t TitleInfo) (ArchiveKind, BinaryPath) {
	if t.Media == MediaNAND {
		return ArchiveSystemSavedata, NewBinaryPath(uint32(t.Media), 0x00020000|t.UniqueID())
	}
	return ArchiveUserSavedata, NewBinaryPath(uint32(t.Media), t.LowID(), t.HighID())
}

// ExtdataArchive returns the archive kind and binary path of the title's extdata.
func ExtdataArchive(t TitleInfo) (ArchiveKind, BinaryPath) {
	return ArchiveExtdata, NewBinaryPath(uint32(MediaSD), t.ExtdataID(), 0)
}

// SecureValueKey returns the key of the secure value tied to the title's save.
func SecureValueKey(t TitleInfo) uint64 {
	return uint64(SecureValueSlotSD)<<32 | uint64(t.UniqueID())<<8
}

// SecureStorage mounts save and extdata containers. Only one container may be
// mounted at a time.
type SecureStorage interface {
	// Mount opens the container and returns its filesystem.
	Mount(kind ArchiveKind, path BinaryPath) (afero.Fs, error)
	// Unmount closes the mounted container.
	Unmount() error
	// Commit flushes pending writes of the mounted save container.
	Commit() error
	// DeleteSecureValue erases the secure value record for key.
	DeleteSecureValue(key uint64) error
}

// FlashCart streams fixed-size pages to and from a DS cartridge save chip.
type FlashCart interface {
	Capacity(card CardType) uint32
	PageSize(card CardType) uint32
	ReadPage(card CardType, offset uint32, buf []byte) error
	WritePage(card CardType, offset uint32, buf []byte) error
}

// GBAFlash reads and writes GBA virtual-console saves.
type GBAFlash interface {
	// MostRecentSlot returns the most recently written save slot. An empty
	// result means the title was never saved.
	MostRecentSlot(lowID, highID uint32, media MediaType) []byte
	// WriteBackup writes data to the title's save slot. False means the
	// title was never saved.
	WriteBackup(lowID, highID uint32, media MediaType, data []byte) bool
}

// DeviceError carries the status code returned by a device call.
type DeviceError struct {
	Op   string
	Code int32
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s: result 0x%08X", e.Op, uint32(e.Code))
}

// CodeOf extracts the device status code carried by err: 0 for nil, -1 for
// errors that did not come from a device.
func CodeOf(err error) int32 {
	if err == nil {
		return 0
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return de.Code
	}
	return -1
}
