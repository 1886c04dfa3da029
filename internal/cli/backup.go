package cli

import (
	"strconv"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/savekeep/internal/history"
	"github.com/mesh-intelligence/savekeep/internal/holder"
	"github.com/mesh-intelligence/savekeep/internal/layout"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// findBackup resolves a backup by folder name, the last match winning, or
// by its index in the list.
func findBackup(h *holder.Holder, arg string) (int, types.BackupEntry, error) {
	backups := h.Backups()
	for i := len(backups) - 1; i >= 0; i-- {
		if backups[i].Folder == arg {
			return i, backups[i], nil
		}
	}
	if i, err := strconv.Atoi(arg); err == nil && i >= 0 && i < len(backups) {
		return i, backups[i], nil
	}
	return -1, types.BackupEntry{}, userError(errors.NotFoundf("backup %q of %s", arg, h.Name()))
}

func newBackupCmd(flags *rootFlags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "backup <title> [name]",
		Short: "Back up a title",
		Long: `Back up one medium of a title into a named folder. Without a name the
backup is named after the current time (YYYYMMDD-HHMMSS). Naming an existing
backup overwrites it in place.

Example:
  savekeep backup 0004000000055D00
  savekeep backup 0004000000055D00 before-elite-four --kind extdata`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			h, t, err := a.holderFor(args[0], kind)
			if err != nil {
				return err
			}

			name := layout.NewBackupName(a.clock)
			if len(args) == 2 {
				name = args[1]
			}
			entry := types.BackupEntry{Origin: types.OriginNew, Folder: name}
			if _, existing, err := findBackup(h, name); err == nil && existing.Folder == name {
				entry = existing
			}

			res := h.Backup(types.Input{Backup: entry})
			a.record(history.OpBackup, h, t.Info, name, res)
			path, _ := h.Path(types.BackupEntry{Origin: max(entry.Origin, types.OriginDefault), Folder: name})
			return report(cmd.OutOrStdout(), flags.jsonMode, res, path)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "medium: save, extdata, ds or gba (default: the title's first)")
	return cmd
}

func newRestoreCmd(flags *rootFlags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "restore <title> <backup>",
		Short: "Restore a backup into the title's storage",
		Long: `Restore writes a backup, named by folder or by its index in
"savekeep list", back into the title's live storage.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			h, t, err := a.holderFor(args[0], kind)
			if err != nil {
				return err
			}
			_, entry, err := findBackup(h, args[1])
			if err != nil {
				return err
			}

			res := h.Restore(types.Input{Backup: entry})
			a.record(history.OpRestore, h, t.Info, entry.Folder, res)
			path, _ := h.Path(entry)
			return report(cmd.OutOrStdout(), flags.jsonMode, res, path)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "medium: save, extdata, ds or gba (default: the title's first)")
	return cmd
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "delete <title> <backup>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			h, t, err := a.holderFor(args[0], kind)
			if err != nil {
				return err
			}
			i, entry, err := findBackup(h, args[1])
			if err != nil {
				return err
			}

			path, _ := h.Path(entry)
			res := h.DeleteBackup(i)
			a.record(history.OpDelete, h, t.Info, entry.Folder, res)
			return report(cmd.OutOrStdout(), flags.jsonMode, res, path)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "medium: save, extdata, ds or gba (default: the title's first)")
	return cmd
}
