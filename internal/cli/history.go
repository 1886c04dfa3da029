package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/savekeep/internal/catalog"
	"github.com/mesh-intelligence/savekeep/internal/history"
)

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var (
		limit int
		title string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded backup, restore and delete operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, done, err := historyLog(flags)
			if err != nil {
				return err
			}
			defer done()

			var entries []history.Entry
			if title != "" {
				id, perr := catalog.ParseTitleID(title)
				if perr != nil {
					return userError(perr)
				}
				entries, err = log.ForTitle(id, limit)
			} else {
				entries, err = log.List(limit)
			}
			if err != nil {
				return sysError(err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintln(tw, "WHEN\tOPERATION\tTITLE\tKIND\tFOLDER\tOUTCOME\tMESSAGE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					humanize.Time(e.At), e.Op, e.TitleID, e.Kind, e.Folder, e.Outcome, e.Message)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries (0 for all)")
	cmd.Flags().StringVar(&title, "title", "", "only show entries of this title id")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "export <file>",
			Short: "Write the history to a JSONL file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				log, done, err := historyLog(flags)
				if err != nil {
					return err
				}
				defer done()
				n, err := log.Export(appFs, args[0])
				if err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <file>",
			Short: "Add the entries of a JSONL history export",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				log, done, err := historyLog(flags)
				if err != nil {
					return err
				}
				defer done()
				n, err := log.Import(appFs, args[0])
				if err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", n, args[0])
				return nil
			},
		},
	)
	return cmd
}

// historyLog opens the history without loading the title manifest.
func historyLog(flags *rootFlags) (*history.Log, func(), error) {
	cfg, dataDir, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.HistoryEnabled() {
		return nil, nil, userError(errors.New("history is disabled in config.yaml"))
	}
	log, err := openHistory(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { log.Close() }, nil
}
