package container

import (
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/fsutil"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// archiveRoot is the root of a mounted container's filesystem.
const archiveRoot = "/"

// StandardSave backs up save archives: the system save archive for NAND
// titles and the user save archive for everything else. A restore is
// committed and the title's secure value erased so that the console accepts
// the restored save.
type StandardSave struct {
	Storage types.SecureStorage
}

// Kind returns types.KindSave.
func (s *StandardSave) Kind() types.MediumKind { return types.KindSave }

// Backup mounts the save archive and mirrors it into dir.
func (s *StandardSave) Backup(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Backing up save for %016X", info.ID)
	kind, path := types.SaveArchive(info)
	return backupArchive(s.Storage, kind, path, fs, dir, "save", "Save backup successful.")
}

// Restore mounts the save archive, replaces its contents with the backup in
// dir, commits and erases the secure value.
func (s *StandardSave) Restore(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Restoring save for %016X", info.ID)
	kind, path := types.SaveArchive(info)

	archive, err := s.Storage.Mount(kind, path)
	if err != nil {
		return types.Failed(types.ReasonMount, types.CodeOf(err), "Failed to mount save.")
	}
	defer unmount(s.Storage)

	if res := restoreArchive(archive, fs, dir, "save"); !res.OK() {
		return res
	}

	if err := s.Storage.Commit(); err != nil {
		return types.Failed(types.ReasonCommit, types.CodeOf(err), "Failed to commit save data.")
	}
	if err := s.Storage.DeleteSecureValue(types.SecureValueKey(info)); err != nil {
		return types.Failed(types.ReasonSecureValue, types.CodeOf(err), "Failed to erase secure value.")
	}
	return types.Succeeded("Save restore successful.")
}

// ExtraData backs up a title's extdata archive. Extdata has no secure value
// and needs no commit.
type ExtraData struct {
	Storage types.SecureStorage
}

// Kind returns types.KindExtdata.
func (e *ExtraData) Kind() types.MediumKind { return types.KindExtdata }

// Backup mounts the extdata archive and mirrors it into dir.
func (e *ExtraData) Backup(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Backing up extdata for %016X", info.ID)
	kind, path := types.ExtdataArchive(info)
	return backupArchive(e.Storage, kind, path, fs, dir, "extdata", "Extdata backup successful.")
}

// Restore mounts the extdata archive and replaces its contents with the
// backup in dir.
func (e *ExtraData) Restore(info types.TitleInfo, fs afero.Fs, dir string) types.Result {
	logger.Debugf("Restoring extdata for %016X", info.ID)
	kind, path := types.ExtdataArchive(info)

	archive, err := e.Storage.Mount(kind, path)
	if err != nil {
		return types.Failed(types.ReasonMount, types.CodeOf(err), "Failed to mount extdata.")
	}
	defer unmount(e.Storage)

	if res := restoreArchive(archive, fs, dir, "extdata"); !res.OK() {
		return res
	}
	return types.Succeeded("Extdata restore successful.")
}

// backupArchive mounts the container, stages its tree in memory and only then
// replaces dir with it. A failed mount or read leaves dir as it was.
func backupArchive(storage types.SecureStorage, kind types.ArchiveKind, path types.BinaryPath,
	fs afero.Fs, dir, what, okMsg string) types.Result {
	archive, err := storage.Mount(kind, path)
	if err != nil {
		return types.Failed(types.ReasonMount, types.CodeOf(err), "Failed to mount "+what+".")
	}
	defer unmount(storage)

	stage := afero.NewMemMapFs()
	if err := fsutil.CopyDirectory(archive, archiveRoot, stage, archiveRoot); err != nil {
		logger.Debugf("reading %s: %v", what, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to copy "+what+".")
	}
	if err := fsutil.Recreate(fs, dir); err != nil {
		logger.Debugf("preparing %s: %v", dir, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to create backup folder.")
	}
	if err := fsutil.CopyDirectory(stage, archiveRoot, fs, dir); err != nil {
		logger.Debugf("copying %s: %v", what, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to copy "+what+".")
	}
	return types.Succeeded(okMsg)
}

// restoreArchive replaces the contents of a mounted container with the backup
// in dir. The backup is read into memory before the container is cleared, so
// a missing or unreadable backup leaves the container untouched.
func restoreArchive(archive afero.Fs, fs afero.Fs, dir, what string) types.Result {
	if !fsutil.DirectoryExists(fs, dir) {
		return types.Failed(types.ReasonFileOpen, -1, "Failed to open backup folder.")
	}
	stage := afero.NewMemMapFs()
	if err := fsutil.CopyDirectory(fs, dir, stage, archiveRoot); err != nil {
		logger.Debugf("reading backup %s: %v", dir, err)
		return types.Failed(types.ReasonFileOpen, -1, "Failed to read backup folder.")
	}
	if err := fsutil.ClearDirectory(archive, archiveRoot); err != nil {
		logger.Debugf("clearing %s: %v", what, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to clear "+what+" data.")
	}
	if err := fsutil.CopyDirectory(stage, archiveRoot, archive, archiveRoot); err != nil {
		logger.Debugf("copying backup into %s: %v", what, err)
		return types.Failed(types.ReasonFilesystem, -1, "Failed to copy backup into "+what+".")
	}
	return types.Succeeded("")
}
