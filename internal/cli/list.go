package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/savekeep/internal/fsutil"
	"github.com/mesh-intelligence/savekeep/internal/layout"
)

type backupJSON struct {
	Index   int    `json:"index"`
	Folder  string `json:"folder"`
	Origin  int    `json:"origin"`
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Created string `json:"created,omitempty"`
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list <title>",
		Short: "List the backups of a title",
		Long: `List the backups recorded for one medium of a title. The title is a
16-digit hex id or its index in "savekeep titles".

Example:
  savekeep list 0004000000055D00
  savekeep list 3 --kind extdata`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			h, _, err := a.holderFor(args[0], kind)
			if err != nil {
				return err
			}

			var rows []backupJSON
			for i, e := range h.Backups() {
				row := backupJSON{Index: i, Folder: e.Folder, Origin: e.Origin}
				if row.Path, err = h.Path(e); err != nil {
					logger.Warningf("resolving %q: %v", e.Folder, err)
				} else if row.Size, err = fsutil.DirSize(a.fs, row.Path); err != nil {
					logger.Debugf("sizing %s: %v", row.Path, err)
				}
				if t, ok := layout.ParseBackupName(e.Folder); ok {
					row.Created = t.Format("2006-01-02 15:04:05")
				}
				rows = append(rows, row)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s backups for %s.\n", h.Kind(), h.Name())
				return nil
			}
			tw := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintln(tw, "#\tNAME\tSIZE\tCREATED\tPATH")
			for _, r := range rows {
				created := "-"
				if t, ok := layout.ParseBackupName(r.Folder); ok {
					created = humanize.Time(t)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Index, r.Folder, humanize.IBytes(uint64(r.Size)), created, r.Path)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "medium: save, extdata, ds or gba (default: the title's first)")
	return cmd
}
