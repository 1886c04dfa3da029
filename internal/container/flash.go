package container

import (
	"bufio"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/fsutil"
	"github.com/mesh-intelligence/savekeep/internal/layout"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// pagesBuffered is how many pages the file side buffers between device calls.
const pagesBuffered = 32

// DSFlash streams a DS cartridge save chip page by page to and from a single
// <shortDesc>.sav file.
type DSFlash struct {
	Cart types.FlashCart
}

// Kind returns types.KindDSSave.
func (d *DSFlash) Kind() types.MediumKind { return types.KindDSSave }

func (d *DSFlash) geometry(card types.CardType) (capacity, page uint32, ok bool) {
	capacity = d.Cart.Capacity(card)
	page = d.Cart.PageSize(card)
	return capacity, page, capacity != 0 && page != 0
}

// Backup reads capacity/pageSize pages from the cartridge into the backup
// file. Pages are staged in memory first, so a page read failure reports the
// device's result code and leaves any earlier backup in dir untouched.
func (d *DSFlash) Backup(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Backing up DS save for %016X", info.ID)
	capacity, page, ok := d.geometry(info.CardType)
	if !ok {
		return types.Failed(types.ReasonDeviceIO, -1, "Unsupported DS save chip.")
	}

	name := layout.DSSaveFile(info)
	stage := afero.NewMemMapFs()
	f, err := stage.Create(name)
	if err != nil {
		return types.Failed(types.ReasonFileOpen, -1, "Failed to open backup file.")
	}
	res := streamToFile(d.Cart, info.CardType, capacity, page, f)
	f.Close()
	if !res.OK() {
		return res
	}

	if err := fsutil.Recreate(fs, dir); err != nil {
		logger.Debugf("preparing %s: %v", dir, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to create backup folder.")
	}
	if err := fsutil.CopyFile(stage, name, fs, filepath.Join(dir, name)); err != nil {
		logger.Debugf("writing DS backup: %v", err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to write backup file.")
	}
	return res
}

func streamToFile(cart types.FlashCart, card types.CardType, capacity, page uint32, f afero.File) types.Result {
	w := bufio.NewWriterSize(f, int(page)*pagesBuffered)
	buf := make([]byte, page)
	for i := uint32(0); i < capacity/page; i++ {
		if err := cart.ReadPage(card, page*i, buf); err != nil {
			logger.Debugf("reading page at 0x%X: %v", page*i, err)
			return types.Failed(types.ReasonDeviceIO, types.CodeOf(err), "Failed to backup DS save.")
		}
		if _, err := w.Write(buf); err != nil {
			return types.Failed(types.ReasonFilesystem, -1, "Failed to write backup file.")
		}
	}
	if err := w.Flush(); err != nil {
		return types.Failed(types.ReasonFilesystem, -1, "Failed to write backup file.")
	}
	return types.Succeeded("DS save backed up successfully.")
}

// Restore writes the backup file back to the cartridge in page order. A file
// shorter than the chip is rejected before anything is written; a page write
// failure stops the loop with the earlier pages already applied.
func (d *DSFlash) Restore(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Restoring DS save for %016X", info.ID)
	capacity, page, ok := d.geometry(info.CardType)
	if !ok {
		return types.Failed(types.ReasonDeviceIO, -1, "Unsupported DS save chip.")
	}

	path := filepath.Join(dir, layout.DSSaveFile(info))
	f, err := fs.Open(path)
	if err != nil {
		return types.Failed(types.ReasonFileOpen, -1, "Failed to open backup file.")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.Size() < int64(capacity) {
		return types.Failed(types.ReasonFilesystem, -1, "Backup file is smaller than the save chip.")
	}

	r := bufio.NewReaderSize(f, int(page)*pagesBuffered)
	buf := make([]byte, page)
	for i := uint32(0); i < capacity/page; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return types.Failed(types.ReasonFilesystem, -1, "Failed to read backup file.")
		}
		if err := d.Cart.WritePage(info.CardType, page*i, buf); err != nil {
			logger.Debugf("writing page at 0x%X: %v", page*i, err)
			return types.Failed(types.ReasonDeviceIO, types.CodeOf(err), "Failed to restore DS save.")
		}
	}
	return types.Succeeded("DS save restored successfully.")
}

// GBAFlash backs up GBA virtual-console saves as one opaque 00000001.sav file.
type GBAFlash struct {
	Flash types.GBAFlash
}

// Kind returns types.KindGBASave.
func (g *GBAFlash) Kind() types.MediumKind { return types.KindGBASave }

// Backup stores the most recently written save slot. A title that was never
// saved fails with ReasonNeverSaved before dir is touched.
func (g *GBAFlash) Backup(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Backing up GBA VC save for %016X", info.ID)
	data := g.Flash.MostRecentSlot(info.LowID(), info.HighID(), info.Media)
	if len(data) == 0 {
		return types.Failed(types.ReasonNeverSaved, -1, "GBA VC game was not saved at least once.")
	}

	if err := fsutil.Recreate(fs, dir); err != nil {
		logger.Debugf("preparing %s: %v", dir, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to create backup folder.")
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, layout.GBASaveFile), data, 0o644); err != nil {
		logger.Debugf("writing GBA backup: %v", err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to write backup file.")
	}
	return types.Succeeded("GBA VC save backed up successfully.")
}

// Restore hands the whole backup file to the GBA save writer.
func (g *GBAFlash) Restore(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Restoring GBA VC save for %016X", info.ID)
	path := filepath.Join(dir, layout.GBASaveFile)
	f, err := fs.Open(path)
	if err != nil {
		return types.Failed(types.ReasonFileOpen, -1, "Failed to open backup file.")
	}
	defer f.Close()

	data, err := afero.ReadAll(f)
	if err != nil {
		return types.Failed(types.ReasonFilesystem, -1, "Failed to read backup file.")
	}
	if !g.Flash.WriteBackup(info.LowID(), info.HighID(), info.Media, data) {
		return types.Failed(types.ReasonNeverSaved, -1, "GBA VC game was not saved at least once.")
	}
	return types.Succeeded("GBA VC save restored successfully.")
}
