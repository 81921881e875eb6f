package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pkroam/pkroam/internal/appconfig"
	"github.com/pkroam/pkroam/internal/rlog"
	"github.com/pkroam/pkroam/internal/store"
)

var configDirFlag string

var roamStore *store.RoamStore

func main() {
	rootCmd := &cobra.Command{
		Use:   "pkroam",
		Short: "Custodial transfer tool for Gen III Pokémon save files",
		Long: `pkroam moves creatures between a game's save file and a roam store,
a holding area outside any save so they can be carried between games.`,
		SilenceUsage:      true,
		PersistentPreRunE: openRoamStore,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if roamStore != nil {
				roamStore.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "override the pkroam config directory")

	rootCmd.AddCommand(
		newDepositCmd(),
		newWithdrawCmd(),
		newListSavesCmd(),
		newListMonsCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openRoamStore(cmd *cobra.Command, args []string) error {
	rlog.SetLogger(rlog.NewZerologAdapter(zerolog.New(os.Stderr).With().Timestamp().Logger()))

	paths, err := appconfig.Resolve(configDirFlag)
	if err != nil {
		return err
	}

	rs, err := store.Open(paths.DatabasePath())
	if err != nil {
		return err
	}
	roamStore = rs
	return nil
}
