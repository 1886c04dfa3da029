// Package emu emulates the console's device services on top of a host
// directory tree so that the drivers can run against dumped storage.
//
// The tree looks like:
//
//	<root>/archives/<kind>/<hex path>/   mounted save and extdata archives
//	<root>/securevalues/<key>            secure value records
//	<root>/cart.sav                      the inserted DS cartridge's save chip
//	<root>/gbavc/<high><low>.sav         GBA virtual-console saves
package emu

import (
	"github.com/juju/loggo"
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/container"
)

var logger = loggo.GetLogger("savekeep.emu")

// Result codes reported through types.DeviceError, as the console would.
const (
	codeNotFound     int32 = -0x377FBB88 // 0xC8804478
	codeBusy         int32 = -0x26FFBC0F // 0xD90043F1
	codeOutOfRange   int32 = -0x1F3FF803 // 0xE0C007FD
	codeNotMounted   int32 = -0x26FFBC09 // 0xD90043F7
	codeWriteFailure int32 = -0x373FBB8C // 0xC8C04474
)

// NewDevices returns the three device collaborators rooted at root on fs.
func NewDevices(fs afero.Fs, root string) container.Devices {
	return container.Devices{
		Storage: NewSecureStorage(fs, root),
		Cart:    NewFlashCart(fs, root),
		GBA:     NewGBAFlash(fs, root),
	}
}
