package emu

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// CartSaveFile is the image of the inserted cartridge's save chip.
const CartSaveFile = "cart.sav"

var chipCapacity = map[types.CardType]uint32{
	types.EEPROM512B:         512,
	types.EEPROM8KB:          8 * 1024,
	types.EEPROM64KB:         64 * 1024,
	types.EEPROM128KB:        128 * 1024,
	types.Flash256KB1:        256 * 1024,
	types.Flash256KB2:        256 * 1024,
	types.Flash256KBInfrared: 256 * 1024,
	types.Flash512KB1:        512 * 1024,
	types.Flash512KB2:        512 * 1024,
	types.Flash512KBInfrared: 512 * 1024,
	types.Flash1MB:           1024 * 1024,
	types.Flash8MB:           8 * 1024 * 1024,
}

var eepromPage = map[types.CardType]uint32{
	types.EEPROM512B:  16,
	types.EEPROM8KB:   32,
	types.EEPROM64KB:  128,
	types.EEPROM128KB: 256,
}

const flashPage = 256

// FlashCart reads and writes pages of <root>/cart.sav.
type FlashCart struct {
	fs   afero.Fs
	path string
}

var _ types.FlashCart = (*FlashCart)(nil)

// NewFlashCart returns a FlashCart over root.
func NewFlashCart(fs afero.Fs, root string) *FlashCart {
	return &FlashCart{fs: fs, path: filepath.Join(root, CartSaveFile)}
}

// Capacity returns the chip size in bytes, or 0 for unknown chips.
func (c *FlashCart) Capacity(card types.CardType) uint32 {
	return chipCapacity[card]
}

// PageSize returns the chip's page size in bytes, or 0 for unknown chips.
func (c *FlashCart) PageSize(card types.CardType) uint32 {
	if chipCapacity[card] == 0 {
		return 0
	}
	if p, ok := eepromPage[card]; ok {
		return p
	}
	return flashPage
}

// ReadPage fills buf from offset. Bytes past the end of the image read as
// erased flash (0xFF).
func (c *FlashCart) ReadPage(card types.CardType, offset uint32, buf []byte) error {
	if err := c.check(card, offset, buf); err != nil {
		return err
	}
	f, err := c.fs.Open(c.path)
	if err != nil {
		return &types.DeviceError{Op: "read page", Code: codeNotFound}
	}
	defer f.Close()

	n, err := f.ReadAt(buf, int64(offset))
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return &types.DeviceError{Op: "read page", Code: codeWriteFailure}
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return nil
}

// WritePage writes buf at offset, creating the image if needed.
func (c *FlashCart) WritePage(card types.CardType, offset uint32, buf []byte) error {
	if err := c.check(card, offset, buf); err != nil {
		return err
	}
	f, err := c.fs.OpenFile(c.path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return &types.DeviceError{Op: "write page", Code: codeWriteFailure}
	}
	if _, err := f.WriteAt(buf, int64(offset)); err != nil {
		f.Close()
		return &types.DeviceError{Op: "write page", Code: codeWriteFailure}
	}
	if err := f.Close(); err != nil {
		return &types.DeviceError{Op: "write page", Code: codeWriteFailure}
	}
	return nil
}

func (c *FlashCart) check(card types.CardType, offset uint32, buf []byte) error {
	capacity := c.Capacity(card)
	if capacity == 0 || uint64(offset)+uint64(len(buf)) > uint64(capacity) {
		return &types.DeviceError{Op: "page io", Code: codeOutOfRange}
	}
	return nil
}
