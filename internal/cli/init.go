package cli

import (
	"fmt"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// emptyManifest is written when no title manifest exists yet.
const emptyManifest = `# Titles on the emulated device.
#
# titles:
#   - id: 0004000000055D00
#     media: sd
#     product_code: CTR-P-EKJA
#     short_desc: Pokemon X
#     extdata: true
titles: []
`

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration, backups and device directories",
		Long:  "Create config.yaml, the backups root and an empty emulated device tree with a title manifest.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	cfg, dataDir, err := loadConfig(flags)
	if err != nil {
		return err
	}

	device := cfg.DeviceRoot(dataDir)
	dirs := []string{
		dataDir,
		cfg.BackupsRoot(dataDir),
		filepath.Join(device, "archives"),
		filepath.Join(device, "securevalues"),
		filepath.Join(device, "gbavc"),
	}
	for _, d := range dirs {
		if err := appFs.MkdirAll(d, 0o755); err != nil {
			return sysError(errors.Annotatef(err, "create %s", d))
		}
	}

	manifest := cfg.Manifest(dataDir)
	ok, err := afero.Exists(appFs, manifest)
	if err != nil {
		return sysError(errors.Annotate(err, "stat manifest"))
	}
	if !ok {
		if err := afero.WriteFile(appFs, manifest, []byte(emptyManifest), 0o644); err != nil {
			return sysError(errors.Annotate(err, "write manifest"))
		}
	}

	if cfg.HistoryEnabled() {
		log, err := openHistory(dataDir)
		if err != nil {
			return err
		}
		log.Close()
	}

	fmt.Fprintln(cmd.OutOrStdout(), "savekeep initialized in", dataDir)
	return nil
}
