// Package cli implements the chlog command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/changelog"
	"github.com/raveheart1/chlog/internal/config"
	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/fragments"
	"github.com/raveheart1/chlog/internal/git"
	"github.com/raveheart1/chlog/internal/output"
	"github.com/raveheart1/chlog/internal/release"
	"github.com/raveheart1/chlog/internal/version"
)

var (
	rootFlag    string
	rebuildFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog [version]",
	Short: "Aggregate changelog fragments into CHANGELOG.md",
	Long: `chlog manages per-change YAML fragment files and aggregates them into a
single CHANGELOG.md.

Contributors add one fragment per change under changelogs/unreleased, each a
small YAML file with an author and a title. At release time, chlog moves every
pending fragment into changelogs/released/<version>, records who released it
and when, stages the new folder for the next commit, and regenerates
CHANGELOG.md from the full released tree.`,
	Example: `  chlog v1.2.19                          # release pending fragments and regenerate
  chlog --rebuild                        # regenerate CHANGELOG.md only
  chlog new --title "Fix crash on startup"
  chlog lint                             # validate all unreleased fragments`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Repository root (default: resolved from the enclosing git repository)")
	rootCmd.Flags().BoolVar(&rebuildFlag, "rebuild", false,
		"Skip the release step and only regenerate the changelog")
}

// Execute runs the root command, printing structured errors to stderr.
// A non-nil return means the process should exit non-zero.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if cliErr := chlogerrors.As(err); cliErr != nil {
			chlogerrors.Print(cliErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

// cmdEnv bundles what every command needs to operate on one repository:
// the resolved root, the loaded configuration, the fragment store bound to
// that root, and the version-control client.
type cmdEnv struct {
	root  string
	cfg   *config.Configuration
	store *fragments.Store
	vcs   git.Client
}

// vcsFactory creates the version-control client. Tests swap it for a fake
// so commands run against a plain temporary directory.
var vcsFactory = func(start string) git.Client {
	return git.NewRepoClient(start)
}

// loadEnv resolves the repository root (--root flag wins over git
// resolution), loads configuration, and builds the fragment store. Tolerant
// warnings from the store go to warn.
func loadEnv(warn io.Writer) (*cmdEnv, error) {
	vcs := vcsFactory(rootFlag)

	root := rootFlag
	if root == "" {
		var err error
		root, err = vcs.Root()
		if err != nil {
			return nil, chlogerrors.Wrap(err, chlogerrors.Runtime, "resolving repository root",
				"Run chlog inside a git repository, or pass --root")
		}
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, chlogerrors.Wrap(err, chlogerrors.Configuration, "loading configuration")
	}

	store := fragments.NewStore(root, fragments.Options{
		Dir:           cfg.Dir,
		UnreleasedDir: cfg.UnreleasedDir,
		ReleasedDir:   cfg.ReleasedDir,
		Suffix:        cfg.FragmentSuffix,
		InfoFile:      cfg.ReleaseInfoFile,
		ArchiveFile:   cfg.ArchiveFile,
		Warn:          warn,
	})

	return &cmdEnv{root: root, cfg: cfg, store: store, vcs: vcs}, nil
}

// runRoot performs the full release cycle, or only the regeneration when
// --rebuild is set. Without a version argument the placeholder tag is used,
// which deterministically fails format validation.
func runRoot(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if !rebuildFlag {
		tag := versionArg(args)
		releaser := release.New(env.store, env.vcs, release.WithOutput(cmd.ErrOrStderr()))
		if err := releaser.Release(tag); err != nil {
			return err
		}
	}

	return regenerate(env, cmd.ErrOrStderr())
}

// versionArg returns the positional version tag, or the failing placeholder
// when none was given.
func versionArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return version.Placeholder
}

// regenerate rebuilds the changelog document and overwrites the output file.
func regenerate(env *cmdEnv, warn io.Writer) error {
	outPath := filepath.Join(env.root, env.cfg.OutputFile)
	builder := changelog.NewBuilder(env.store, env.cfg.Header)
	if err := builder.WriteFile(outPath); err != nil {
		return err
	}
	output.Successf(warn, outPath, "Wrote")
	return nil
}
