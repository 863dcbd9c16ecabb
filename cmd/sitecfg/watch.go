// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ishanbagchi/sitecfg/internal/config"
)

func newWatchCmd() *cobra.Command {
	var overrides config.Overrides

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Reload FILE whenever it changes until interrupted",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watch(ctx, args[0], overrides, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&overrides.Site, "site", "", "override the site URL")
	cmd.Flags().StringVar(&overrides.Base, "base", "", "override the base path")
	return cmd
}

// watch prints the descriptor after every successful reload. Failed reloads
// are logged by the holder and keep the previous descriptor.
func watch(ctx context.Context, file string, overrides config.Overrides, stdout, stderr io.Writer) error {
	loader := config.NewLoader(file).WithOverrides(overrides)
	initial, err := loader.Load()
	if err != nil {
		if errors.Is(err, config.ErrConfiguration) {
			printConfigError(stderr, file, err)
			return errReported
		}
		return err
	}

	holder := config.NewHolder(initial, loader)
	updates := make(chan *config.Descriptor, 1)
	holder.RegisterListener(updates)
	if err := holder.StartWatcher(ctx); err != nil {
		return err
	}
	defer holder.Stop()

	fmt.Fprintf(stdout, "watching %s: %s\n", file, summarize(initial))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d := <-updates:
			fmt.Fprintf(stdout, "reloaded %s: %s\n", file, summarize(d))
		}
	}
}

func summarize(d *config.Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "site=%s base=%s", d.Site(), d.Base())
	if names := d.IntegrationNames(); len(names) > 0 {
		fmt.Fprintf(&b, " integrations=%s", strings.Join(names, ","))
	}
	return b.String()
}
