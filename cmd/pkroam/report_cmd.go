package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pkroam/pkroam/internal/report"
	"github.com/pkroam/pkroam/internal/save"
)

func newReportCmd() *cobra.Command {
	var saveID int64
	var hasSaveID bool
	var format, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a save's party/boxes or the roam store's contents to XLSX or PDF",
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

			var err error
			switch format {
			case "xlsx":
				err = report.ExportXLSX(rows, output)
			case "pdf":
				err = report.ExportPDF(rows, output)
			default:
				err = errors.New("format must be xlsx or pdf")
			}
			if err != nil {
				return err
			}

			fmt.Println(color.GreenString("Wrote %s", output))
			return nil
		},
	}

	cmd.Flags().Int64Var(&saveID, "save", 0, "report on this save instead of the roam store")
	cmd.Flags().StringVar(&format, "format", "xlsx", "xlsx or pdf")
	cmd.Flags().StringVar(&output, "output", "", "output file path (required)")
	cmd.MarkFlagRequired("output")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSaveID = cmd.Flags().Changed("save")
	}

	return cmd
}
