package cli

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/batch"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Concurrency int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <job files or globs...>",
		Short: "Run integration jobs from files",
		Long: `Run every job in the given job files and print one report per job.

Job files are JSON, YAML or TOML, optionally gzip (.gz) or zstd (.zst)
compressed. Arguments may be doublestar globs.

Example:
  integrate run suites/gaussians.yaml
  integrate run 'suites/**/*.toml' --concurrency 8 --format json`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(cmd, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 0, "jobs run at once (default: file setting, then GOMAXPROCS)")

	return cmd
}

func runJobs(cmd *cobra.Command, opts *RunOptions, patterns []string) error {
	files, err := batch.Expand(patterns)
	if err != nil {
		return commandError(err)
	}

	var jobs []batch.Job
	concurrency := opts.Concurrency
	for _, path := range files {
		f, err := batch.Load(path)
		if err != nil {
			return commandError(err)
		}
		jobs = append(jobs, f.Jobs...)
		if opts.Concurrency == 0 && f.Concurrency > concurrency {
			concurrency = f.Concurrency
		}
	}

	e, err := newEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	defer e.close()

	runner := batch.NewRunner(e.engine, concurrency, e.logger, nil)
	reports, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	return finish(cmd, opts.Format, reports)
}

// finish prints reports and maps failed jobs onto ExitFailure
func finish(cmd *cobra.Command, format string, reports []batch.Report) error {
	if err := batch.Encode(cmd.OutOrStdout(), reports, format); err != nil {
		return commandError(err)
	}
	for _, r := range reports {
		if !r.OK() {
			return &ExitError{Code: ExitFailure, Err: batch.ErrJobsFailed}
		}
	}
	return nil
}
