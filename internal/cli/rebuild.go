package cli

import (
	"github.com/spf13/cobra"
)

var watchFlag bool

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Regenerate CHANGELOG.md from released fragments",
	Long: `Regenerate CHANGELOG.md from the released changelog tree without
performing a release. Equivalent to 'chlog --rebuild'.

With --watch, chlog keeps running and regenerates the changelog whenever the
fragment tree changes. Each regeneration is a full rebuild.`,
	Example: `  chlog rebuild
  chlog rebuild --watch`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
	rebuildCmd.Flags().BoolVar(&watchFlag, "watch", false,
		"Keep running and regenerate on fragment tree changes")
}

func runRebuild(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := regenerate(env, cmd.ErrOrStderr()); err != nil {
		return err
	}

	if watchFlag {
		return watchAndRebuild(cmd, env)
	}
	return nil
}
