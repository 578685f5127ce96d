package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/fragments"
	"github.com/raveheart1/chlog/internal/output"
)

var (
	newTitleFlag  string
	newAuthorFlag string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Add a changelog fragment for a pending change",
	Long: `Write a new fragment file into changelogs/unreleased. The filename is
derived from the title; a numeric suffix is added on collision.

The author defaults to the configured git user.name.`,
	Example: `  chlog new --title "Fix crash on startup"
  chlog new -t "Add dark mode" -a "ana"`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitleFlag, "title", "t", "", "Single-line description of the change")
	newCmd.Flags().StringVarP(&newAuthorFlag, "author", "a", "", "Author identity (default: git user.name)")
}

func runNew(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	title := strings.TrimSpace(newTitleFlag)
	if title == "" {
		return &chlogerrors.CLIError{
			Category:    chlogerrors.Argument,
			Message:     "a fragment title is required",
			Usage:       `chlog new --title "<description>"`,
			Remediation: []string{"Describe the change in one line, e.g. chlog new -t \"Fix crash on startup\""},
		}
	}

	author := strings.TrimSpace(newAuthorFlag)
	if author == "" {
		author, err = env.vcs.UserName()
		if err != nil {
			return chlogerrors.Wrap(err, chlogerrors.Runtime, "resolving author identity",
				"Set git config user.name, or pass --author")
		}
	}

	name, err := fragmentFileName(env, title)
	if err != nil {
		return err
	}

	path, err := env.store.WriteFragment(name, fragments.Fragment{Author: author, Title: title})
	if err != nil {
		return err
	}

	output.Successf(cmd.OutOrStdout(), path, "Added fragment")
	return nil
}

// fragmentFileName slugs the title into a filename that does not collide
// with an existing fragment.
func fragmentFileName(env *cmdEnv, title string) (string, error) {
	base := slug(title)
	name := base + env.store.Suffix()
	for i := 2; ; i++ {
		_, err := os.Stat(filepath.Join(env.store.UnreleasedDir(), name))
		if os.IsNotExist(err) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking fragment name %s: %w", name, err)
		}
		name = fmt.Sprintf("%s-%d%s", base, i, env.store.Suffix())
	}
}

// maxSlugLen keeps generated filenames comfortably below filesystem limits.
const maxSlugLen = 48

// slug lowercases the title and collapses every non-alphanumeric run into a
// single hyphen.
func slug(title string) string {
	var sb strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		switch {
		case isAlnum:
			sb.WriteRune(r)
			lastHyphen = false
		case !lastHyphen && sb.Len() > 0:
			sb.WriteByte('-')
			lastHyphen = true
		}
		if sb.Len() >= maxSlugLen {
			break
		}
	}
	s := strings.Trim(sb.String(), "-")
	if s == "" {
		return "change"
	}
	return s
}
