// Package catalog keeps the list of installed titles the engine works on.
// Titles live in an arena addressed by index; holders and engines keep the
// index, never the title. The catalog's lock guards every backup set of
// every title so that a renderer reading a list and an operation mutating
// it serialize on the same lock.
package catalog

import (
	"sync"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/fsutil"
	"github.com/mesh-intelligence/savekeep/internal/layout"
	"github.com/mesh-intelligence/savekeep/internal/registry"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

var logger = loggo.GetLogger("savekeep.catalog")

// Title is one installed title and the backups recorded for it.
type Title struct {
	Info types.TitleInfo

	// Kinds lists the media the title has data on, e.g. a standard save
	// and extdata.
	Kinds []types.MediumKind

	saves   *registry.Set
	extdata *registry.Set
}

// Has reports whether the title has data of the given kind.
func (t *Title) Has(kind types.MediumKind) bool {
	for _, k := range t.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Backups returns the backup set for kind. Save-like kinds share one set.
func (t *Title) Backups(kind types.MediumKind) *registry.Set {
	if kind.IsExtdata() {
		return t.extdata
	}
	return t.saves
}

// Catalog is the arena of titles.
type Catalog struct {
	mu     sync.Mutex
	titles []*Title
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Add appends a title and returns its index.
func (c *Catalog) Add(info types.TitleInfo, kinds ...types.MediumKind) int {
	t := &Title{
		Info:    info,
		Kinds:   kinds,
		saves:   registry.NewSet(&c.mu),
		extdata: registry.NewSet(&c.mu),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.titles = append(c.titles, t)
	return len(c.titles) - 1
}

// At returns the title at index i.
func (c *Catalog) At(i int) (*Title, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.titles) {
		return nil, errors.Annotatef(types.ErrInvalidIndex, "title %d", i)
	}
	return c.titles[i], nil
}

// Len returns the number of titles.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.titles)
}

// Find returns the index of the title with the given id.
func (c *Catalog) Find(id uint64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.titles {
		if t.Info.ID == id {
			return i, nil
		}
	}
	return -1, errors.Annotatef(types.ErrTitleNotFound, "%016X", id)
}

// Refresh rebuilds every backup set from the directories on fs: the default
// directory of each title under lay, then each additional folder configured
// for it. Entries from the default directory get OriginDefault, entries from
// an additional folder get that folder's index.
func (c *Catalog) Refresh(fs afero.Fs, lay layout.Layout, cfg types.ConfigStore) error {
	for i := 0; i < c.Len(); i++ {
		t, err := c.At(i)
		if err != nil {
			return errors.Trace(err)
		}
		for _, kind := range t.Kinds {
			entries, err := scan(fs, lay.BackupsDir(t.Info, kind), additionalFolders(cfg, t.Info.ID, kind))
			if err != nil {
				return errors.Annotatef(err, "scanning backups of %016X", t.Info.ID)
			}
			t.Backups(kind).Replace(entries)
			logger.Tracef("%016X %s: %d backups", t.Info.ID, kind, len(entries))
		}
	}
	return nil
}

func additionalFolders(cfg types.ConfigStore, id uint64, kind types.MediumKind) []string {
	if cfg == nil {
		return nil
	}
	if kind.IsExtdata() {
		return cfg.AdditionalExtdataFolders(id)
	}
	return cfg.AdditionalSaveFolders(id)
}

func scan(fs afero.Fs, defaultDir string, extra []string) ([]types.BackupEntry, error) {
	var entries []types.BackupEntry
	names, err := fsutil.Subdirectories(fs, defaultDir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for _, n := range names {
		entries = append(entries, types.BackupEntry{Origin: types.OriginDefault, Folder: n})
	}
	for i, dir := range extra {
		names, err := fsutil.Subdirectories(fs, dir)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, n := range names {
			entries = append(entries, types.BackupEntry{Origin: i, Folder: n})
		}
	}
	return entries, nil
}
