// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ishanbagchi/sitecfg/internal/config"
	"github.com/ishanbagchi/sitecfg/internal/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate one or more configuration files",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, files []string) error {
			errs := make([]error, len(files))

			// Files are independent; every one is reported even when another fails.
			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, file := range files {
				i, file := i, file
				g.Go(func() error {
					_, errs[i] = config.NewLoader(file).Load()
					return nil
				})
			}
			_ = g.Wait()

			failed := false
			for i, file := range files {
				if errs[i] != nil {
					failed = true
					printConfigError(cmd.ErrOrStderr(), file, errs[i])
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", file)
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
}

// printConfigError writes one line per failing field.
func printConfigError(w io.Writer, file string, err error) {
	fmt.Fprintf(w, "Configuration error in %s:\n", file)

	if ve, ok := validate.AsValidationError(err); ok {
		for _, e := range ve.Errors() {
			fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
		}
		return
	}
	var ce *config.ConfigurationError
	if errors.As(err, &ce) {
		err = ce.Err
	}
	fmt.Fprintf(w, "  %v\n", err)
}
