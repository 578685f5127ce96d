package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print chlog version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if build.IsDevBuild() {
			fmt.Fprintf(cmd.OutOrStdout(), "chlog %s (development build)\n", build.Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chlog %s (commit %s, built %s)\n",
			build.Version, build.Commit, build.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
