package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) newModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect available models",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List models available through the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			list, err := client.Models.List(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(list)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tOWNED BY\tCAPABILITY\tTIER")
			for _, m := range list.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.OwnedBy, m.Capability, m.Tier)
			}
			return tw.Flush()
		},
	})

	return cmd
}
