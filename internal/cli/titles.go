package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/savekeep/internal/holder"
	"github.com/mesh-intelligence/savekeep/pkg/types"
)

type titleJSON struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Media       string   `json:"media"`
	ProductCode string   `json:"product_code,omitempty"`
	Kinds       []string `json:"kinds"`
	Favorite    bool     `json:"favorite"`
	ActivityLog bool     `json:"activity_log"`
	Backups     int      `json:"backups"`
}

func newTitlesCmd(flags *rootFlags) *cobra.Command {
	var favoritesOnly bool
	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List the titles on the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			var rows []titleJSON
			for i := 0; i < a.titles.Len(); i++ {
				t, err := a.titles.At(i)
				if err != nil {
					return sysError(err)
				}
				h := holder.NewSaveHolder(a.deps, i)
				if favoritesOnly && !h.Favorite() {
					continue
				}
				row := titleJSON{
					Index:       i,
					ID:          t.Info.HexID(),
					Name:        h.Name(),
					Media:       h.MediaType().String(),
					ProductCode: t.Info.ProductCode,
					Favorite:    h.Favorite(),
					ActivityLog: h.SpecialInfo(types.TitleIsActivityLog) == types.SpecialTrue,
				}
				// Save-like kinds share one set; count each set once.
				counted := make(map[bool]bool)
				for _, k := range t.Kinds {
					row.Kinds = append(row.Kinds, k.String())
					if !counted[k.IsExtdata()] {
						counted[k.IsExtdata()] = true
						row.Backups += t.Backups(k).Len()
					}
				}
				rows = append(rows, row)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintln(tw, "#\tID\tNAME\tMEDIA\tKINDS\tBACKUPS")
			for _, r := range rows {
				name := r.Name
				if r.Favorite {
					name = "* " + name
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", r.Index, r.ID, name, r.Media, strings.Join(r.Kinds, ","), r.Backups)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "only list favorite titles")
	return cmd
}
