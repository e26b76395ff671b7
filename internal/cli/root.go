package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/buildinfo"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file is loaded, the logger is
// attached to the command context and log hooks are installed so --verbose
// shows per-stage timings and cache activity.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Weekgrid compiles weekly schedules into timetables",
		Long:         `Weekgrid turns a weekly schedule document (YAML, TOML or JSON) into a 15-minute timetable grid with per-block minute totals, and renders it as HTML, SVG, PNG, PDF, XLSX, JSON or plain text.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: user config dir/weekgrid/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ReportError writes err as a one-line "✗ message", adding the offending
// document field and text for document errors.
func ReportError(w io.Writer, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		fmt.Fprintln(w, styleIconError.Render(iconError)+" "+err.Error())
		return
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+e.Message)
	if e.Field != "" {
		fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("at %s: %q", e.Field, e.Text)))
	}
}
