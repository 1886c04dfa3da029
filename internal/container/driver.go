// Package container implements the storage container drivers: one per medium
// kind, each able to back a title's live data up into a backup folder and to
// restore it from one. Drivers never return errors; every outcome is a
// types.Result.
package container

import (
	"github.com/juju/loggo"
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

//go:generate go run go.uber.org/mock/mockgen -package container -destination mocks_test.go github.com/mesh-intelligence/savekeep/pkg/types SecureStorage,GBAFlash

var logger = loggo.GetLogger("savekeep.container")

// Driver moves data between one kind of storage container and a backup
// folder at dir on the backups filesystem fs.
type Driver interface {
	Kind() types.MediumKind

	// Backup recreates dir empty and fills it from the title's container.
	Backup(info types.TitleInfo, fs afero.Fs, dir string) types.Result

	// Restore writes the backup held in dir into the title's container.
	Restore(info types.TitleInfo, fs afero.Fs, dir string) types.Result
}

// Devices bundles the device collaborators the drivers are built on.
type Devices struct {
	Storage types.SecureStorage
	Cart    types.FlashCart
	GBA     types.GBAFlash
}

// ForKind returns the driver for kind.
func ForKind(kind types.MediumKind, d Devices) (Driver, error) {
	switch kind {
	case types.KindSave:
		return &StandardSave{Storage: d.Storage}, nil
	case types.KindExtdata:
		return &ExtraData{Storage: d.Storage}, nil
	case types.KindDSSave:
		return &DSFlash{Cart: d.Cart}, nil
	case types.KindGBASave:
		return &GBAFlash{Flash: d.GBA}, nil
	default:
		return nil, types.ErrUnknownMedium
	}
}

// unmount releases the mounted container. Failures are logged; the
// operation's result has already been decided.
func unmount(storage types.SecureStorage) {
	if err := storage.Unmount(); err != nil {
		logger.Warningf("unmounting archive: %v", err)
	}
}
