package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "srp",
		Short:         "Star Rail Profile CLI (srp): fetch your HoYoLAB game record",
		Long:          "srp reads the Honkai: Star Rail role summary and character roster from the HoYoLAB game-record API using your ltoken/ltuid cookies, and prints them in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newFetchCmd(app),
	)

	return rootCmd
}
