package cli

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lessons-api",
		Short:         "Lessons catalog and ordering API",
		Long:          "lessons-api serves the lesson catalog (listing, search, capacity updates) and accepts orders over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}
