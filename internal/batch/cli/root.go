package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/batch"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Every job succeeded
	ExitFailure      = 1 // At least one job failed or missed its expectation
	ExitCommandError = 2 // Bad flags, unreadable job files, invalid jobs
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func commandError(err error) error {
	return &ExitError{Code: ExitCommandError, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// usageArgs marks argument validation failures as command errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return commandError(err)
		}
		return nil
	}
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string

	// Config supplies integration limits; nil loads them from the environment.
	Config *config.IntegrationConfig
}

// NewRootCommand creates the root command for the integrate CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Numerical integration from the command line",
		Long: `integrate evaluates definite integrals of JavaScript expressions with
adaptive quadrature, Clenshaw-Curtis, improper-integral transforms and
Monte Carlo methods (plain, Halton low-discrepancy, recursive stratified).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(batch.Formats, opts.Format) {
				return commandError(fmt.Errorf("invalid format %q: must be one of %v", opts.Format, batch.Formats))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return commandError(err)
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", batch.FormatText, "output format (text|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewQuadCommand(opts))
	cmd.AddCommand(NewMCCommand(opts))

	return cmd
}

// env is what every command needs to integrate
type env struct {
	engine *engine.Engine
	logger *logging.Logger
	close  func()
}

func newEnv(opts *RootOptions) (*env, error) {
	limits := config.LoadOrDefault().Integration
	if opts.Config != nil {
		limits = *opts.Config
	}

	logger, err := logging.New(logging.CLIConfig(opts.Verbose))
	if err != nil {
		return nil, commandError(err)
	}

	pool, err := engine.NewPool(limits)
	if err != nil {
		return nil, commandError(err)
	}

	return &env{
		engine: engine.New(pool, limits, logger, nil),
		logger: logger,
		close: func() {
			pool.Close()
			_ = logger.Sync()
		},
	}, nil
}
