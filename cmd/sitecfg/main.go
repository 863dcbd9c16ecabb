// SPDX-License-Identifier: MIT

// sitecfg loads, validates and inspects static-site build configurations.
//
// Usage:
//
//	sitecfg validate configs/blog.yaml configs/logs.yaml
//	sitecfg show configs/blog.yaml --format json
//	sitecfg diff configs/logs.yaml configs/logs-mdx.yaml
//	sitecfg watch configs/blog.yaml
//
// Exit codes:
//   - 0: success
//   - 1: configuration is invalid (parse or validation error)
//   - 2: usage error
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	xlog "github.com/ishanbagchi/sitecfg/internal/log"
	"github.com/ishanbagchi/sitecfg/internal/metrics"
	"github.com/ishanbagchi/sitecfg/internal/version"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// errReported marks a failure whose details were already written to stderr.
var errReported = errors.New("failure reported")

// usageError marks bad arguments or flags.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

type globalOptions struct {
	logLevel    string
	logFormat   string
	metricsFile string
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *globalOptions) {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "sitecfg",
		Short: "Validate and inspect static-site build configurations",
		Long: `sitecfg loads site build configuration files (YAML or JSON), validates
them strictly, and prints, compares or watches the normalized result.`,
		Version:       version.String(),
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, opts, stderr)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", xlog.FormatConsole, "log format (json or console)")
	rootCmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format on exit")

	rootCmd.AddCommand(
		newValidateCmd(),
		newShowCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newThemesCmd(),
		newIntegrationsCmd(),
		newKeysCmd(),
	)
	return rootCmd, opts
}

// setupLogging configures the logger from flags. LOG_LEVEL applies when
// --log-level was not given.
func setupLogging(cmd *cobra.Command, opts *globalOptions, stderr io.Writer) error {
	switch opts.logFormat {
	case xlog.FormatJSON, xlog.FormatConsole:
	default:
		return usageError{fmt.Errorf("invalid --log-format %q (json or console)", opts.logFormat)}
	}
	level := opts.logLevel
	if !cmd.Flags().Changed("log-level") && os.Getenv("LOG_LEVEL") != "" {
		level = ""
	}
	xlog.Configure(xlog.Config{
		Level:  level,
		Format: opts.logFormat,
		Output: stderr,
	})
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd, opts := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)

	if opts.metricsFile != "" {
		if werr := metrics.WriteTextfile(opts.metricsFile); werr != nil {
			fmt.Fprintf(stderr, "Error: write metrics: %v\n", werr)
			if err == nil {
				err = errReported
			}
		}
	}

	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.Name())
		return exitUsage
	case errors.Is(err, errReported):
		return exitInvalid
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
