package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/config"
	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented " + config.FileName + " with the default settings",
	Long: `Write a fully commented ` + config.FileName + ` at the repository root. Every
key starts at its default, so the file documents the configuration surface
without changing any behavior until edited.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInitConfig,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	path := filepath.Join(env.root, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return chlogerrors.New(chlogerrors.Configuration,
			fmt.Sprintf("%s already exists", path),
			"Edit the existing file instead, or remove it and rerun chlog init")
	}
	if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
		return chlogerrors.Wrap(err, chlogerrors.Runtime, "writing config file")
	}

	output.Successf(cmd.OutOrStdout(), path, "Wrote")
	return nil
}
