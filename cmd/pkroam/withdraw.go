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

func newWithdrawCmd() *cobra.Command {
	var monsterID, saveID int64
	var boxNumber, boxPosition int

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Move a creature from the roam store into a save's box",
		RunE: func(cmd *cobra.Command, args []string) error {
			saveRec, err := findSave(saveID)
			if err != nil {
				return err
			}

			lock := applock.Acquire(saveRec.SavePath)
			defer lock.Release()

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Prefix = "Withdrawing... "
			sp.Start()
			defer sp.Stop()

			sf, err := save.Open(saveRec.SavePath)
			if err != nil {
				return err
			}

			ctrl := transfer.New(roamStore)
			creature, err := ctrl.Withdraw(transfer.WithdrawRequest{
				Save:      sf,
				MonsterID: monsterID,
				DestBox:   boxNumber,
				DestSlot:  boxPosition,
			})
			sp.Stop()
			if err != nil {
				return err
			}

			fmt.Println(color.GreenString("Withdrew species %d into box %d slot %d", creature.Species(), boxNumber, boxPosition))
			return nil
		},
	}

	cmd.Flags().Int64Var(&monsterID, "mon-id", 0, "roam store monster id (required)")
	cmd.Flags().Int64Var(&saveID, "save-id", 0, "save id (required)")
	cmd.Flags().IntVar(&boxNumber, "box-number", 0, "destination box number, 1..14 (required)")
	cmd.Flags().IntVar(&boxPosition, "box-position", 0, "destination box position, 1..30 (required)")
	cmd.MarkFlagRequired("mon-id")
	cmd.MarkFlagRequired("save-id")
	cmd.MarkFlagRequired("box-number")
	cmd.MarkFlagRequired("box-position")

	return cmd
}
