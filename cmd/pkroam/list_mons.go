package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkroam/pkroam/internal/report"
	"github.com/pkroam/pkroam/internal/save"
)

func newListMonsCmd() *cobra.Command {
	var saveID int64
	var hasSaveID bool

	cmd := &cobra.Command{
		Use:   "list-mons",
		Short: "List creatures in a save's party/boxes, or in the roam store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []report.Row
			if hasSaveID {
				saveRec, err := findSave(saveID)
				if err != nil {
					return err
				}
				sf, err := save.Open(saveRec.SavePath)
				if err != nil {
					return err
				}
				rows, err = rowsFromSave(sf)
				if err != nil {
					return err
				}
			} else {
				var err error
				rows, err = rowsFromStore()
				if err != nil {
					return err
				}
			}
			return printMonsTable(rows)
		},
	}

	cmd.Flags().Int64Var(&saveID, "save", 0, "list this save's party and boxes instead of the roam store")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSaveID = cmd.Flags().Changed("save")
	}

	return cmd
}

func printMonsTable(rows []report.Row) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "BOX\tSLOT\tSPECIES\tNICKNAME")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Box, r.Slot, r.Species, r.Nickname)
	}
	return w.Flush()
}
