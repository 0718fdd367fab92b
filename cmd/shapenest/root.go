package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/project"
)

// cli holds state shared by all commands.
type cli struct {
	logLevel string
	logJSON  bool
	verbose  bool
	logger   *slog.Logger
	out      io.Writer

	profilesPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{out: os.Stdout, logger: slog.Default()}
	root := &cobra.Command{
		Use:           "shapenest",
		Short:         "Pareto packing of rectilinear shapes on a fixed-width sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), c.logLevel, c.logJSON)
			if err != nil {
				return err
			}
			c.logger = logger
			c.out = cmd.OutOrStdout()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&c.logJSON, "log-json", false, "emit JSON logs")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "print per-generation progress")
	root.PersistentFlags().StringVar(&c.profilesPath, "profiles", project.DefaultProfilesPath(), "custom G-code profile store")

	root.AddCommand(
		newRunCmd(c),
		newReportCmd(c),
		newConfigCmd(c),
		newValidateCmd(c),
		newCompareCmd(c),
		newImportCmd(c),
		newProfileCmd(c),
		newArchiveCmd(c),
		newTraceCmd(c),
	)
	return root
}

func newLogger(w io.Writer, level string, asJSON bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
