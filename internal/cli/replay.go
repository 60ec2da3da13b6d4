package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/storewatch/sentinel/internal/replay"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	DataDir     string
	Addr        string
	MetricsAddr string
	Speed       float64
	Loop        bool
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Stream a recorded dataset over TCP",
		Long: `Serve the datasets of a directory as one chronologically sorted,
newline-delimited JSON feed, rebasing timestamps to the connection time.
Demo clients consume the feed as if the store were live.

Example:
  sentinel replay --data ./data/input --addr :8765 --speed 10
  sentinel replay --data ./data/input --loop --metrics-addr :9100`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataDir, "data", "", "dataset directory (required)")
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8765", "listen address")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Prometheus /metrics listen address (optional)")
	cmd.Flags().Float64Var(&opts.Speed, "speed", 1.0, "time-compression factor")
	cmd.Flags().BoolVar(&opts.Loop, "loop", false, "restart the feed after the last record")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	feed, err := replay.LoadFeed(opts.DataDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load datasets", err)
	}

	// Setup signal handling for graceful shutdown. Use the command's
	// context if available (for testing), otherwise create one.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv := &http.Server{Addr: opts.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			metricsSrv.Close()
		}()
		slog.Info("metrics exposed", "addr", opts.MetricsAddr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Streaming %d records on %s (speed %gx). Press Ctrl-C to stop.\n",
		feed.Len(), opts.Addr, opts.Speed)

	srv := replay.NewServer(feed, replay.Options{Speed: opts.Speed, Loop: opts.Loop})
	if err := srv.ListenAndServe(ctx, opts.Addr); err != nil {
		return WrapExitError(ExitFailure, "replay service error", err)
	}
	return nil
}
