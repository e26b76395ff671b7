package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/weekgrid/pkg/errors"
)

// watchDebounce collapses the burst of events an editor save produces.
var watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "watch [schedule]",
		Short: "Re-render a schedule whenever it changes",
		Long: `Render a schedule, then render it again every time the file is saved.

Errors in the document are reported and watching continues, so a typo does
not stop the session. Press Ctrl+C to stop.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSchedule,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.setFormats(formatsStr); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	addRenderFlags(cmd, &opts, &formatsStr)
	return cmd
}

// runWatch renders input once and again after each change until ctx is done.
// The parent directory is watched because editors often save by renaming a
// temporary file over the original.
func (c *CLI) runWatch(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx).WithPrefix("watch")

	target, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(errs.ErrCodeUnsupported, err, "start file watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	runner := c.newRunner(ctx)
	defer runner.Close()

	rebuild := func() {
		result, paths, err := c.renderFile(ctx, runner, input, opts)
		if err != nil {
			ReportError(statusOut, err)
			return
		}
		reportRender(input, result, paths)
	}

	rebuild()
	printInfo("Watching %s (Ctrl+C to stop)", input)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("change", "op", event.Op.String())
				pending = time.After(watchDebounce)
			}

		case <-pending:
			pending = nil
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}
