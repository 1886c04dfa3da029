package cli

import (
	"path/filepath"
	"strconv"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/savekeep/internal/catalog"
	"github.com/mesh-intelligence/savekeep/internal/config"
	"github.com/mesh-intelligence/savekeep/internal/emu"
	"github.com/mesh-intelligence/savekeep/internal/history"
	"github.com/mesh-intelligence/savekeep/internal/holder"
	"github.com/mesh-intelligence/savekeep/internal/layout"
	"github.com/mesh-intelligence/savekeep/internal/paths"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

var logger = loggo.GetLogger("savekeep.cli")

// app is everything a command needs, opened from the resolved directories.
type app struct {
	fs      afero.Fs
	clock   clock.Clock
	cfg     *config.Store
	dataDir string
	layout  layout.Layout
	titles  *catalog.Catalog
	history *history.Log
	deps    holder.Deps
}

// appFs and appClock are replaced by tests.
var (
	appFs    afero.Fs    = afero.NewOsFs()
	appClock clock.Clock = clock.WallClock
)

// loadConfig resolves the config directory, loads config.yaml and applies
// the logging specification.
func loadConfig(flags *rootFlags) (*config.Store, string, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, "", sysError(errors.Annotate(err, "resolve config dir"))
	}
	cfg, err := config.Load(appFs, configDir)
	if err != nil {
		return nil, "", sysError(errors.Annotate(err, "load config"))
	}

	levels := cfg.LogLevel()
	if flags.logLevel != "" {
		levels = flags.logLevel
	}
	if err := loggo.ConfigureLoggers(levels); err != nil {
		return nil, "", userError(errors.Annotatef(err, "log level %q", levels))
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.DataDir())
	if err != nil {
		return nil, "", sysError(errors.Annotate(err, "resolve data dir"))
	}
	return cfg, dataDir, nil
}

// openApp loads the configuration, the title manifest and the backups on
// disk. The caller must close the returned app.
func openApp(flags *rootFlags) (*app, error) {
	cfg, dataDir, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	manifest := cfg.Manifest(dataDir)
	titles, err := catalog.LoadManifest(appFs, manifest)
	if err != nil {
		return nil, userError(errors.Annotate(err, "load titles (run `savekeep init` first?)"))
	}
	lay := layout.New(cfg.BackupsRoot(dataDir))
	if err := titles.Refresh(appFs, lay, cfg); err != nil {
		return nil, sysError(errors.Annotate(err, "scan backups"))
	}

	a := &app{
		fs:      appFs,
		clock:   appClock,
		cfg:     cfg,
		dataDir: dataDir,
		layout:  lay,
		titles:  titles,
		deps: holder.Deps{
			Titles:  titles,
			Config:  cfg,
			Fs:      appFs,
			Layout:  lay,
			Devices: emu.NewDevices(appFs, cfg.DeviceRoot(dataDir)),
		},
	}
	if cfg.HistoryEnabled() {
		if a.history, err = openHistory(dataDir); err != nil {
			return nil, err
		}
	}
	logger.Debugf("loaded %d titles from %s, backups under %s", titles.Len(), manifest, lay.Root)
	return a, nil
}

func openHistory(dataDir string) (*history.Log, error) {
	log, err := history.Open(dataDir, appClock)
	if err != nil {
		return nil, sysError(errors.Annotatef(err, "open history in %s", filepath.Join(dataDir, history.DBFile)))
	}
	return log, nil
}

func (a *app) close() {
	if a.history == nil {
		return
	}
	if err := a.history.Close(); err != nil {
		logger.Warningf("closing history: %v", err)
	}
}

// resolveTitle accepts a 16-digit hex title id or a catalog index.
func (a *app) resolveTitle(arg string) (int, *catalog.Title, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || len(arg) > 4 {
		id, err := catalog.ParseTitleID(arg)
		if err != nil {
			return -1, nil, userError(err)
		}
		if idx, err = a.titles.Find(id); err != nil {
			return -1, nil, userError(err)
		}
	}
	t, err := a.titles.At(idx)
	if err != nil {
		return -1, nil, userError(errors.Annotatef(types.ErrTitleNotFound, "%q", arg))
	}
	return idx, t, nil
}

// holderFor binds the title named by arg to the engine of kind. An empty
// kind selects the title's first medium.
func (a *app) holderFor(arg, kind string) (*holder.Holder, *catalog.Title, error) {
	idx, t, err := a.resolveTitle(arg)
	if err != nil {
		return nil, nil, err
	}
	if len(t.Kinds) == 0 {
		return nil, nil, userError(errors.Annotatef(types.ErrNoMedium, "%s", t.Info.HexID()))
	}
	k := t.Kinds[0]
	if kind != "" {
		if k, err = types.ParseMediumKind(kind); err != nil {
			return nil, nil, userError(err)
		}
		if !t.Has(k) {
			return nil, nil, userError(errors.Annotatef(types.ErrNoMedium, "%s has no %s", t.Info.HexID(), k))
		}
	}
	h, err := holder.New(a.deps, idx, k)
	if err != nil {
		return nil, nil, userError(err)
	}
	return h, t, nil
}

// record stores the result in the history, if enabled.
func (a *app) record(op history.Operation, h *holder.Holder, info types.TitleInfo, folder string, res types.Result) {
	if a.history == nil {
		return
	}
	if _, err := a.history.Record(op, info, h.Kind(), folder, res); err != nil {
		logger.Warningf("recording %s: %v", op, err)
	}
}
