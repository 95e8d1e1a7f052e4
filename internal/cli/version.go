package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haxsysgit/coursework-backend/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show lessons-api version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := version.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "lessons-api %s (commit %s, built %s)\n", v, c, d)
			return nil
		},
	}
}
