// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ishanbagchi/sitecfg/internal/config"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "List the keys whose effective values differ",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var descs [2]*config.Descriptor
			failed := false
			for i, file := range args {
				d, err := config.NewLoader(file).Load()
				if err != nil {
					if !errors.Is(err, config.ErrConfiguration) {
						return err
					}
					printConfigError(cmd.ErrOrStderr(), file, err)
					failed = true
					continue
				}
				descs[i] = d
			}
			if failed {
				return errReported
			}

			out := cmd.OutOrStdout()
			summary := config.Diff(descs[0], descs[1])
			if summary.Empty() {
				fmt.Fprintln(out, "no changes")
				return nil
			}
			for _, c := range summary.Changes {
				fmt.Fprintf(out, "~ %s: %s -> %s\n", c.Key, formatValue(c.Old), formatValue(c.New))
			}
			if summary.RebuildRequired {
				fmt.Fprintln(out, "rebuild required")
			}
			return nil
		},
	}
}

func formatValue(v any) string {
	if v == nil {
		return "(unset)"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
