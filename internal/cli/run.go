package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storewatch/sentinel/internal/adapter"
	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/engine"
	"github.com/storewatch/sentinel/internal/sink"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	DataDir    string
	OutputFile string
	ConfigFile string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Detect anomalies in a recorded dataset",
		Long: `Load a dataset directory, evaluate all seven detection rules, and write
the combined event log.

Input and output locations are explicit flags; nothing is resolved from
the working directory.

Example:
  sentinel run --data ./data/input --out ./events.jsonl
  sentinel run --data ./data/input --out ./events.jsonl --config sentinel.yaml --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetection(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataDir, "data", "", "dataset directory (required)")
	cmd.Flags().StringVar(&opts.OutputFile, "out", "", "event log destination (required)")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "YAML run configuration (optional)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runDetection(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			return WrapExitError(ExitFailure, "invalid configuration", err)
		}
		cfg = loaded
	}

	snap, err := adapter.LoadDir(opts.DataDir, cfg.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load dataset", err)
	}

	report, err := engine.New(cfg).Run(snap)
	if err != nil {
		return WrapExitError(ExitFailure, "pipeline failed", err)
	}

	if err := sink.WriteFile(opts.OutputFile, report.Events); err != nil {
		return WrapExitError(ExitCommandError, "failed to write event log", err)
	}

	if opts.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d events -> %s\n", report.RunToken, report.Total, opts.OutputFile)
		for _, res := range report.Results {
			status := fmt.Sprintf("%d events", res.Events)
			if res.Err != nil {
				status = "FAILED: " + res.Error
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %-22s %s\n", res.Rule, res.Name, status)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Digest: %s\n", report.Digest)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d rule(s) failed", report.Failed))
	}
	return nil
}
