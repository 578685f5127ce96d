package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/output"
)

// debounceDelay coalesces the event bursts editors and `git mv` produce into
// a single rebuild.
const debounceDelay = 250 * time.Millisecond

// watchAndRebuild blocks, regenerating the changelog whenever the fragment
// tree changes. It returns on SIGINT/SIGTERM. Every rebuild is a full,
// sequential regeneration; rebuild errors are reported and watching
// continues, since a half-edited fragment is a normal transient state.
func watchAndRebuild(cmd *cobra.Command, env *cmdEnv) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, env); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var spin *spinner.Spinner
	if output.IsTerminal(os.Stderr) {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
		spin.Suffix = " watching for fragment changes (Ctrl+C to stop)"
		spin.Start()
		defer spin.Stop()
	}

	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			trackCreatedDir(watcher, event, cmd.ErrOrStderr())
			debounce.Reset(debounceDelay)

		case <-debounce.C:
			if spin != nil {
				spin.Stop()
			}
			if err := regenerate(env, cmd.ErrOrStderr()); err != nil {
				output.Warnf(cmd.ErrOrStderr(), "rebuild failed: %v", err)
			}
			if spin != nil {
				spin.Start()
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.Warnf(cmd.ErrOrStderr(), "watch error: %v", watchErr)
		}
	}
}

// trackCreatedDir registers newly created version folders with the watcher
// so fragments dropped into them still trigger rebuilds. A registration
// failure is reported; the rest of the tree stays watched.
func trackCreatedDir(watcher *fsnotify.Watcher, event fsnotify.Event, warn io.Writer) {
	if !event.Has(fsnotify.Create) {
		return
	}
	fi, err := os.Stat(event.Name)
	if err != nil || !fi.IsDir() {
		return
	}
	if err := watcher.Add(event.Name); err != nil {
		output.Warnf(warn, "cannot watch %s: %v", event.Name, err)
	}
}

// watchTree registers the changelog tree: the top directory, the unreleased
// and released areas, and every existing version folder.
func watchTree(watcher *fsnotify.Watcher, env *cmdEnv) error {
	dirs := []string{
		env.store.UnreleasedDir(),
		env.store.ReleasedDir(),
	}
	tags, err := env.store.ListReleasedVersions()
	if err != nil {
		return err
	}
	for _, tag := range tags {
		dirs = append(dirs, env.store.VersionDir(tag))
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return nil
}
