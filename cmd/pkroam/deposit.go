package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pkroam/pkroam/internal/applock"
	"github.com/pkroam/pkroam/internal/save"
	"github.com/pkroam/pkroam/internal/transfer"
)

func newDepositCmd() *cobra.Command {
	var saveID int64
	var boxNumber, boxPosition, destBox, destPosition int

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Move a creature from a save's box into the roam store",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveRec, err := findSave(saveID)
			if err != nil {
				return err
			}

			lock := applock.Acquire(saveRec.SavePath)
			defer lock.Release()

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Prefix = "Depositing... "
			sp.Start()
			defer sp.Stop()

			sf, err := save.Open(saveRec.SavePath)
			if err != nil {
				return err
			}

			ctrl := transfer.New(roamStore)
			monsterID, err := ctrl.Deposit(transfer.DepositRequest{
				Save:    sf,
				SrcBox:  boxNumber,
				SrcSlot: boxPosition,
				DestBox: destBox,
				DestPos: destPosition,
			})
			sp.Stop()
			if err != nil {
				return err
			}

			fmt.Println(color.GreenString("Deposited as monster id %d", monsterID))
			return nil
		},
	}

	cmd.Flags().Int64Var(&saveID, "save", 0, "save id (required)")
	cmd.Flags().IntVar(&boxNumber, "box-number", 0, "source box number, 1..14 (required)")
	cmd.Flags().IntVar(&boxPosition, "box-position", 0, "source box position, 1..30 (required)")
	cmd.Flags().IntVar(&destBox, "dest-box", 0, "destination roam store box (required)")
	cmd.Flags().IntVar(&destPosition, "dest-position", 0, "destination roam store position (required)")
	cmd.MarkFlagRequired("save")
	cmd.MarkFlagRequired("box-number")
	cmd.MarkFlagRequired("box-position")
	cmd.MarkFlagRequired("dest-box")
	cmd.MarkFlagRequired("dest-position")

	return cmd
}
