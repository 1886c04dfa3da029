package cli

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

func newFavoriteCmd(flags *rootFlags) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "favorite <title>",
		Short: "Mark a title as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			_, t, err := a.resolveTitle(args[0])
			if err != nil {
				return err
			}
			if err := a.cfg.SetFavorite(t.Info.ID, !off); err != nil {
				return sysError(errors.Annotate(err, "save favorites"))
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": t.Info.HexID(), "favorite": !off})
			}
			verb := "added to"
			if off {
				verb = "removed from"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s favorites.\n", t.Info.ShortDesc, verb)
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "remove the title from favorites")
	return cmd
}
