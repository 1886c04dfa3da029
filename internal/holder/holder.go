// Package holder binds a title in the catalog to the engine for one medium
// kind and answers the presentation questions of the rendering layer.
package holder

import (
	"image"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/container"
	"github.com/mesh-intelligence/savekeep/internal/engine"
	"github.com/mesh-intelligence/savekeep/internal/layout"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// Deps are the collaborators shared by every holder.
type Deps struct {
	Titles  engine.Titles
	Config  types.ConfigStore
	Fs      afero.Fs
	Layout  layout.Layout
	Devices container.Devices
}

// Holder is a title bound to the engine of one medium kind.
type Holder struct {
	titles engine.Titles
	index  int
	config types.ConfigStore
	engine *engine.Engine
}

var _ types.Presentation = (*Holder)(nil)

// New returns the holder of the given kind for the title at index.
func New(d Deps, index int, kind types.MediumKind) (*Holder, error) {
	drv, err := container.ForKind(kind, d.Devices)
	if err != nil {
		return nil, err
	}
	return newHolder(d, index, drv), nil
}

// NewSaveHolder binds the title's standard save.
func NewSaveHolder(d Deps, index int) *Holder {
	return newHolder(d, index, &container.StandardSave{Storage: d.Devices.Storage})
}

// NewExtdataHolder binds the title's extdata.
func NewExtdataHolder(d Deps, index int) *Holder {
	return newHolder(d, index, &container.ExtraData{Storage: d.Devices.Storage})
}

// NewDSSaveHolder binds the title's DS cartridge save chip.
func NewDSSaveHolder(d Deps, index int) *Holder {
	return newHolder(d, index, &container.DSFlash{Cart: d.Devices.Cart})
}

// NewGBASaveHolder binds the title's GBA virtual-console save.
func NewGBASaveHolder(d Deps, index int) *Holder {
	return newHolder(d, index, &container.GBAFlash{Flash: d.Devices.GBA})
}

func newHolder(d Deps, index int, drv container.Driver) *Holder {
	return &Holder{
		titles: d.Titles,
		index:  index,
		config: d.Config,
		engine: engine.New(engine.Params{
			Titles: d.Titles,
			Index:  index,
			Driver: drv,
			Config: d.Config,
			Fs:     d.Fs,
			Layout: d.Layout,
		}),
	}
}

// Kind returns the medium kind the holder is bound to.
func (h *Holder) Kind() types.MediumKind { return h.engine.Kind() }

// Backup runs a backup; see engine.Engine.Backup.
func (h *Holder) Backup(in types.Input) types.Result { return h.engine.Backup(in) }

// Restore runs a restore; see engine.Engine.Restore.
func (h *Holder) Restore(in types.Input) types.Result { return h.engine.Restore(in) }

// DeleteBackup deletes backup i; see engine.Engine.DeleteBackup.
func (h *Holder) DeleteBackup(i int) types.Result { return h.engine.DeleteBackup(i) }

// Backups returns the backups recorded for the title and medium.
func (h *Holder) Backups() []types.BackupEntry { return h.engine.Backups() }

// Path returns the directory of a backup entry.
func (h *Holder) Path(e types.BackupEntry) (string, error) { return h.engine.Path(e) }

func (h *Holder) info() types.TitleInfo {
	t, err := h.titles.At(h.index)
	if err != nil {
		return types.TitleInfo{}
	}
	return t.Info
}

// Name returns the title's short description.
func (h *Holder) Name() string { return h.info().ShortDesc }

// Description returns the title's long description.
func (h *Holder) Description() string { return h.info().LongDesc }

// ID returns the title id.
func (h *Holder) ID() uint64 { return h.info().ID }

// Icon returns the title's icon, or nil.
func (h *Holder) Icon() image.Image { return h.info().Icon }

// MediaType returns where the title is installed.
func (h *Holder) MediaType() types.MediaType { return h.info().Media }

// Favorite reports whether the title is marked as favorite.
func (h *Holder) Favorite() bool {
	if h.config == nil {
		return false
	}
	return h.config.Favorite(h.info().ID)
}

// SpecialInfo answers the activity log and cheat questions.
func (h *Holder) SpecialInfo(q types.SpecialInfo) types.SpecialInfoResult {
	info := h.info()
	switch q {
	case types.TitleIsActivityLog:
		return boolResult(info.IsActivityLog())
	case types.CanCheat:
		return boolResult(info.Card == types.CardCTR)
	default:
		return types.SpecialInvalid
	}
}

func boolResult(b bool) types.SpecialInfoResult {
	if b {
		return types.SpecialTrue
	}
	return types.SpecialFalse
}

// CheatKey returns the key the cheat database is indexed by.
func (h *Holder) CheatKey() string { return h.info().HexID() }
