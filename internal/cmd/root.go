// Package cmd implements the zoto command line.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/zoto/internal/config"
	logpkg "github.com/kailas-cloud/zoto/internal/logger"
)

type rootOptions struct {
	envFile    string
	configFile string
	verbose    bool
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "zoto",
		Short: "Turn food preferences into restaurant recommendations",
		Long: `zoto collects mood, taste, cuisine, dietary, meal and budget preferences,
locates the user and asks a recommendation service for matching restaurants.

Use the subcommands to browse catalogs, run a one-off search or serve the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotenv(opts.envFile); err != nil {
				return err
			}
			level := ""
			if opts.verbose {
				level = "debug"
			}
			logger, err := logpkg.NewLogger("cli", level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load environment variables from this file (default: .env if present)")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: config/$ENV.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	root.AddCommand(
		newCatalogCmd(),
		newSearchCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command. Errors other than *ExitError are printed to stderr.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

// ExitError carries a process exit code for a failure that was already reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func loadDotenv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// loadConfig reads --config, or config/$ENV.yaml, falling back to defaults
// when no file exists. Validation is left to the caller after flag overrides.
func loadConfig(opts *rootOptions) (config.Config, error) {
	if opts.configFile != "" {
		return config.LoadFile(opts.configFile)
	}
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return config.Config{}, err
	}
	return cfg, nil
}
