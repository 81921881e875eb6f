package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListSavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-saves",
		Short: "List every save registered with pkroam",
		RunE: func(cmd *cobra.Command, args []string) error {
			saves, err := roamStore.ListSaves()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGAME\tTRAINER NAME\tTRAINER ID\tPLAYTIME\tPATH\tCONNECTED")
			for _, s := range saves {
				connected := color.GreenString("yes")
				if !s.Connected {
					connected = color.RedString("no")
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%02d:%02d\t%s\t%s\n",
					s.ID, s.Game, s.TrainerName, s.PublicID, s.PlaytimeHours, s.PlaytimeMin, s.SavePath, connected)
			}
			return w.Flush()
		},
	}
}
