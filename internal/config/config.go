// Package config loads config.yaml through viper and answers the per-title
// configuration questions of the engine: additional backup folders and
// favorites.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

const (
	fileName = "config"
	fileType = "yaml"
	fileExt  = "config.yaml"
)

// Config keys.
const (
	KeyDataDir                  = "data_dir"
	KeyBackupsRoot              = "backups_root"
	KeyDeviceRoot               = "device_root"
	KeyManifest                 = "manifest"
	KeyHistory                  = "history"
	KeyLogLevel                 = "log_level"
	KeyAdditionalSaveFolders    = "additional_save_folders"
	KeyAdditionalExtdataFolders = "additional_extdata_folders"
	KeyFavorites                = "favorites"
)

// DefaultLogLevel is the loggo specification used when none is configured.
const DefaultLogLevel = "<root>=WARNING"

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# savekeep configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Where backups are written; defaults to <data_dir>/backups.
# backups_root:

# Emulated device tree and its title manifest; default to <data_dir>/device
# and <device_root>/titles.yaml.
# device_root:
# manifest:

# Record every operation in <data_dir>/history.db.
history: true

log_level: "<root>=WARNING"

# Extra folders scanned for backups, keyed by 16-digit hex title id.
# additional_save_folders:
#   0004000000055D00: [/mnt/usb/pokemon-x]
# additional_extdata_folders: {}

favorites: []
`

// Store is the configuration of one run. It implements types.ConfigStore.
type Store struct {
	v  *viper.Viper
	fs afero.Fs

	mu        sync.RWMutex
	saves     map[uint64][]string
	extdata   map[uint64][]string
	favorites map[uint64]bool
}

var _ types.ConfigStore = (*Store)(nil)

// Load reads config.yaml from configDir on fs. The directory and a default
// config.yaml are created on first run.
func Load(fs afero.Fs, configDir string) (*Store, error) {
	if err := fs.MkdirAll(configDir, 0o755); err != nil {
		return nil, errors.Annotate(err, "ensure config dir")
	}
	if err := ensureDefaultConfigFile(fs, configDir); err != nil {
		return nil, errors.Annotate(err, "ensure default config")
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetDefault(KeyHistory, true)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Annotate(err, "read config")
		}
	}
	return New(fs, v)
}

// New builds a Store over an already loaded viper instance.
func New(fs afero.Fs, v *viper.Viper) (*Store, error) {
	s := &Store{v: v, fs: fs}
	var err error
	if s.saves, err = folderMap(v, KeyAdditionalSaveFolders); err != nil {
		return nil, errors.Trace(err)
	}
	if s.extdata, err = folderMap(v, KeyAdditionalExtdataFolders); err != nil {
		return nil, errors.Trace(err)
	}
	s.favorites = make(map[uint64]bool)
	for _, raw := range v.GetStringSlice(KeyFavorites) {
		id, err := parseID(raw)
		if err != nil {
			return nil, errors.Annotate(err, KeyFavorites)
		}
		s.favorites[id] = true
	}
	return s, nil
}

func ensureDefaultConfigFile(fs afero.Fs, configDir string) error {
	path := filepath.Join(configDir, fileExt)
	_, err := fs.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Annotate(err, "stat config file")
	}
	return afero.WriteFile(fs, path, []byte(defaultConfigYAML), 0o644)
}

func folderMap(v *viper.Viper, key string) (map[uint64][]string, error) {
	out := make(map[uint64][]string)
	for raw, folders := range v.GetStringMapStringSlice(key) {
		id, err := parseID(raw)
		if err != nil {
			return nil, errors.Annotate(err, key)
		}
		out[id] = folders
	}
	return out, nil
}

func parseID(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil || s == "" {
		return 0, errors.Annotatef(types.ErrInvalidTitleID, "%q", s)
	}
	return id, nil
}

// AdditionalSaveFolders returns the extra save backup folders of the title.
func (s *Store) AdditionalSaveFolders(id uint64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[id]
}

// AdditionalExtdataFolders returns the extra extdata backup folders of the title.
func (s *Store) AdditionalExtdataFolders(id uint64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extdata[id]
}

// Favorite reports whether the title is a favorite.
func (s *Store) Favorite(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites[id]
}

// SetFavorite marks or unmarks the title and writes config.yaml.
func (s *Store) SetFavorite(id uint64, favorite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if favorite {
		s.favorites[id] = true
	} else {
		delete(s.favorites, id)
	}

	ids := make([]string, 0, len(s.favorites))
	for fid := range s.favorites {
		ids = append(ids, types.TitleInfo{ID: fid}.HexID())
	}
	sort.Strings(ids)
	s.v.Set(KeyFavorites, ids)
	return errors.Annotate(s.v.WriteConfig(), "write config")
}

// DataDir returns the configured data directory, or "".
func (s *Store) DataDir() string { return s.v.GetString(KeyDataDir) }

// BackupsRoot returns the backups root, defaulting to <dataDir>/backups.
func (s *Store) BackupsRoot(dataDir string) string {
	return s.pathOr(KeyBackupsRoot, filepath.Join(dataDir, "backups"))
}

// DeviceRoot returns the emulated device tree, defaulting to <dataDir>/device.
func (s *Store) DeviceRoot(dataDir string) string {
	return s.pathOr(KeyDeviceRoot, filepath.Join(dataDir, "device"))
}

// Manifest returns the title manifest path, defaulting to
// <device root>/titles.yaml.
func (s *Store) Manifest(dataDir string) string {
	return s.pathOr(KeyManifest, filepath.Join(s.DeviceRoot(dataDir), "titles.yaml"))
}

// HistoryEnabled reports whether operations are recorded.
func (s *Store) HistoryEnabled() bool { return s.v.GetBool(KeyHistory) }

// LogLevel returns the loggo logging specification.
func (s *Store) LogLevel() string { return s.v.GetString(KeyLogLevel) }

func (s *Store) pathOr(key, def string) string {
	if p := s.v.GetString(key); p != "" {
		return p
	}
	return def
}
