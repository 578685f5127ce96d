package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/output"
	chlogyaml "github.com/raveheart1/chlog/internal/yaml"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate all unreleased changelog fragments",
	Long: `Check every pending fragment under changelogs/unreleased: YAML syntax
first, then the required author and title fields. All problems are reported
before the command exits, so one broken fragment does not hide another.`,
	Example:       `  chlog lint`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	names, err := env.store.ListUnreleased()
	if err != nil {
		return err
	}

	problems := 0
	for _, name := range names {
		path := filepath.Join(env.store.UnreleasedDir(), name)
		if err := chlogyaml.ValidateFile(path); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", name, err)
			problems++
			continue
		}
		if _, err := env.store.ReadFragment(path); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", name, err)
			problems++
		}
	}

	if problems > 0 {
		return chlogerrors.New(chlogerrors.Fragment,
			fmt.Sprintf("%d of %d fragment(s) failed validation", problems, len(names)))
	}

	output.Statusf(cmd.OutOrStdout(), "%d fragment(s) OK", len(names))
	return nil
}
