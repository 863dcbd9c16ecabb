// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ishanbagchi/sitecfg/internal/config"
	"github.com/ishanbagchi/sitecfg/internal/integration"
	"github.com/ishanbagchi/sitecfg/internal/theme"
)

func newThemesCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the known syntax-highlighting themes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch theme.Kind(kind) {
			case "", theme.KindLight, theme.KindDark:
			default:
				return usageError{fmt.Errorf("invalid --kind %q (light or dark)", kind)}
			}
			out := cmd.OutOrStdout()
			for _, t := range theme.All() {
				if kind != "" && t.Kind != theme.Kind(kind) {
					continue
				}
				marker := " "
				if t.Name == theme.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-28s %-5s  %s\n", marker, t.Name, t.Kind, t.DisplayName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list light or dark themes")
	return cmd
}

func newIntegrationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "integrations",
		Short: "List the known integrations",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, s := range integration.All() {
				fmt.Fprintf(out, "%-10s %-20s %s\n", s.Name, s.Package, s.Description)
			}
		},
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the configuration keys",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, k := range config.Keys() {
				def := "-"
				switch {
				case k.Required:
					def = "required"
				case k.Default != nil:
					def = fmt.Sprintf("%v", k.Default)
				}
				fmt.Fprintf(out, "%-36s %-12s %s\n", k.Path, def, k.Description)
			}
		},
	}
}
