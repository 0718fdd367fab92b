package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/gcode"
	"github.com/piwi3910/ShapeNest/internal/project"
)

func newProfileCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage G-code controller profiles",
	}

	importCmd := &cobra.Command{
		Use:   "import <profile.json>",
		Short: "Add a shared controller profile to the custom profile store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportProfile(args[0])
			if err != nil {
				return err
			}
			replaced, err := project.AddCustomProfile(c.profilesPath, p)
			if err != nil {
				return err
			}
			verb := "Added"
			if replaced {
				verb = "Replaced"
			}
			fmt.Fprintf(c.out, "%s profile %q in %s\n", verb, p.Name, c.profilesPath)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := project.LoadCustomProfiles(c.profilesPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE\tDESCRIPTION")
			for _, p := range gcode.Profiles {
				fmt.Fprintf(tw, "%s\tbuilt-in\t%s\n", p.Name, p.Description)
			}
			for _, p := range custom {
				fmt.Fprintf(tw, "%s\tcustom\t%s\n", p.Name, p.Description)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}
