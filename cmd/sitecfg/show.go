// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ishanbagchi/sitecfg/internal/config"
)

type showOptions struct {
	format string
	site   string
	base   string
	output string
}

func newShowCmd() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the normalized configuration",
		Long: `show loads FILE, applies --site and --base, validates the result and prints
it in normalized form. With -o the output replaces OUT atomically.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.resolveFormat()
			if err != nil {
				return usageError{err}
			}

			loader := config.NewLoader(args[0]).WithOverrides(config.Overrides{
				Site: opts.site,
				Base: opts.base,
			})
			d, err := loader.Load()
			if err != nil {
				if errors.Is(err, config.ErrConfiguration) {
					printConfigError(cmd.ErrOrStderr(), args[0], err)
					return errReported
				}
				return err
			}

			data, err := config.Marshal(d, format)
			if err != nil {
				return err
			}
			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := config.WriteFileAtomic(opts.output, data); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: yaml or json (default from -o extension, else yaml)")
	cmd.Flags().StringVar(&opts.site, "site", "", "override the site URL")
	cmd.Flags().StringVar(&opts.base, "base", "", "override the base path")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to OUT instead of stdout")
	return cmd
}

func (o *showOptions) resolveFormat() (config.Format, error) {
	if o.format != "" {
		return config.ParseFormat(o.format)
	}
	if o.output != "" {
		if f, err := config.FormatForPath(o.output); err == nil {
			return f, nil
		}
	}
	return config.FormatYAML, nil
}
