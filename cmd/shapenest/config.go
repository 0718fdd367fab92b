package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/model"
	"github.com/piwi3910/ShapeNest/internal/project"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect experiment configurations",
	}

	var preset string
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a configuration from a built-in preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := model.GetPreset(preset)
			if !ok {
				return fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(model.GetPresetNames(), ", "))
			}
			if err := project.SaveConfig(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Wrote %s preset to %s\n", preset, args[0])
			return nil
		},
	}
	initCmd.Flags().StringVarP(&preset, "preset", "p", "default", "preset name")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range model.GetPresetNames() {
				fmt.Fprintln(c.out, name)
			}
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Load a configuration and report every invalid setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadConfig(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s:\n%w", args[0], err)
			}
			fmt.Fprintf(c.out, "%s is valid\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, presetsCmd, checkCmd)
	return cmd
}
