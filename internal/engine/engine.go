// Package engine runs single backup, restore and delete operations for one
// (title, medium kind) pair. It resolves where a backup lives, drives the
// bound container driver and keeps the title's backup set in step with the
// directories on disk. Operations run to completion on the caller's
// goroutine and report through types.Result.
package engine

import (
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/catalog"
	"github.com/mesh-intelligence/savekeep/internal/container"
	"github.com/mesh-intelligence/savekeep/internal/fsutil"
	"github.com/mesh-intelligence/savekeep/internal/layout"
	"github.com/mesh-intelligence/savekeep/internal/registry"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

var logger = loggo.GetLogger("savekeep.engine")

// Titles is the part of the title catalog the engine reads.
type Titles interface {
	At(i int) (*catalog.Title, error)
}

// Params configures an Engine.
type Params struct {
	Titles Titles
	Index  int
	Driver container.Driver
	Config types.ConfigStore
	// Fs holds the backups tree.
	Fs     afero.Fs
	Layout layout.Layout
}

// Engine is bound to one title and one medium kind.
type Engine struct {
	titles Titles
	index  int
	driver container.Driver
	config types.ConfigStore
	fs     afero.Fs
	layout layout.Layout
}

// New returns an engine for the title at p.Index using p.Driver.
func New(p Params) *Engine {
	return &Engine{
		titles: p.Titles,
		index:  p.Index,
		driver: p.Driver,
		config: p.Config,
		fs:     p.Fs,
		layout: p.Layout,
	}
}

// Kind returns the medium kind the engine is bound to.
func (e *Engine) Kind() types.MediumKind {
	return e.driver.Kind()
}

// Backup writes a backup named in.Backup.Folder below the directory selected
// by in.Backup.Origin. An existing backup of that name is replaced. With
// OriginNew the backup is registered under OriginDefault once it succeeds.
func (e *Engine) Backup(in types.Input) types.Result {
	title, res, ok := e.title()
	if !ok {
		return res
	}
	info := title.Info

	dir, res, ok := e.backupDir(info, in.Backup)
	if !ok {
		return res
	}

	res = e.driver.Backup(info, e.fs, dir)
	if !res.OK() {
		logger.Debugf("%s backup of %016X to %s failed: %s (0x%08X)", e.Kind(), info.ID, dir, res.Message, uint32(res.Code))
		return res
	}

	if in.Backup.Origin == types.OriginNew {
		title.Backups(e.Kind()).Append(types.BackupEntry{
			Origin: types.OriginDefault,
			Folder: in.Backup.Folder,
		})
	}
	logger.Infof("%s of %016X backed up to %s", e.Kind(), info.ID, dir)
	return res
}

// Restore writes the backup named by in.Backup into the title's container.
// The backup set is not changed.
func (e *Engine) Restore(in types.Input) types.Result {
	title, res, ok := e.title()
	if !ok {
		return res
	}
	info := title.Info

	dir, res, ok := e.backupDir(info, in.Backup)
	if !ok {
		return res
	}

	res = e.driver.Restore(info, e.fs, dir)
	if res.OK() {
		logger.Infof("%s of %016X restored from %s", e.Kind(), info.ID, dir)
	}
	return res
}

// DeleteBackup removes entry i from the backup set and deletes its folder.
func (e *Engine) DeleteBackup(i int) types.Result {
	title, res, ok := e.title()
	if !ok {
		return res
	}

	entry, err := title.Backups(e.Kind()).RemoveAt(i)
	if err != nil {
		return types.Failed(types.ReasonInvalidIndex, -1, "Backup does not exist.")
	}

	base, err := e.baseDir(title.Info, entry.Origin)
	if err != nil {
		logger.Warningf("deleting %q of %016X: %v", entry.Folder, title.Info.ID, err)
		return types.Failed(types.ReasonInvalidIndex, -1, "Backup deletion failed.")
	}
	dir := filepath.Join(base, entry.Folder)
	if err := fsutil.DeleteFolderRecursively(e.fs, dir); err != nil {
		logger.Debugf("deleting %s: %v", dir, err)
		return types.Failed(types.ReasonFilesystem, -1, "Backup deletion failed.")
	}
	logger.Infof("deleted backup %s", dir)
	return types.Succeeded("Backup deletion successful.")
}

// Backups returns a snapshot of the title's backup set for this medium.
func (e *Engine) Backups() []types.BackupEntry {
	set, err := e.set()
	if err != nil {
		return nil
	}
	return set.List()
}

// Path returns the directory of the backup entry.
func (e *Engine) Path(entry types.BackupEntry) (string, error) {
	title, err := e.titles.At(e.index)
	if err != nil {
		return "", errors.Trace(err)
	}
	base, err := e.baseDir(title.Info, entry.Origin)
	if err != nil {
		return "", errors.Trace(err)
	}
	return filepath.Join(base, entry.Folder), nil
}

func (e *Engine) set() (*registry.Set, error) {
	title, err := e.titles.At(e.index)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return title.Backups(e.Kind()), nil
}

func (e *Engine) title() (*catalog.Title, types.Result, bool) {
	title, err := e.titles.At(e.index)
	if err != nil {
		return nil, types.Failed(types.ReasonInvalidIndex, -1, "Title does not exist."), false
	}
	return title, types.Result{}, true
}

func (e *Engine) backupDir(info types.TitleInfo, b types.BackupEntry) (string, types.Result, bool) {
	if !validFolder(b.Folder) {
		return "", types.Failed(types.ReasonFilesystem, -1, "Invalid backup name."), false
	}
	base, err := e.baseDir(info, b.Origin)
	if err != nil {
		return "", types.Failed(types.ReasonInvalidIndex, -1, "Backup folder is not configured."), false
	}
	return filepath.Join(base, b.Folder), types.Result{}, true
}

// baseDir resolves the directory that holds backups with the given origin:
// the default directory for negative origins, otherwise the origin-th
// additional folder configured for the title and medium.
func (e *Engine) baseDir(info types.TitleInfo, origin int) (string, error) {
	if origin < 0 {
		return e.layout.BackupsDir(info, e.Kind()), nil
	}
	var folders []string
	if e.config != nil {
		if e.Kind().IsExtdata() {
			folders = e.config.AdditionalExtdataFolders(info.ID)
		} else {
			folders = e.config.AdditionalSaveFolders(info.ID)
		}
	}
	if origin >= len(folders) {
		return "", errors.Annotatef(types.ErrInvalidIndex, "additional folder %d", origin)
	}
	return folders[origin], nil
}

// validFolder rejects names that would resolve outside their base directory.
func validFolder(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
