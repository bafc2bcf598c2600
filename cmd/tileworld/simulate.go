// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/holomush/tileworld/internal/config"
	"github.com/holomush/tileworld/internal/logging"
	"github.com/holomush/tileworld/internal/mapdata"
	"github.com/holomush/tileworld/internal/observability"
	"github.com/holomush/tileworld/internal/physics"
	"github.com/holomush/tileworld/internal/push"
	"github.com/holomush/tileworld/internal/script"
	"github.com/holomush/tileworld/internal/tween"
	"github.com/holomush/tileworld/internal/world"
	"github.com/holomush/tileworld/internal/xdg"
	"github.com/holomush/tileworld/pkg/errutil"
)

// simulateConfig holds configuration for the simulate command.
type simulateConfig struct {
	mapPath    string
	scriptPath string
}

// Validate checks that the configuration is valid.
func (cfg *simulateConfig) Validate() error {
	if cfg.mapPath == "" {
		return fmt.Errorf("map is required")
	}
	if cfg.scriptPath == "" {
		return fmt.Errorf("script is required")
	}
	return nil
}

// NewSimulateCmd creates the simulate subcommand.
func NewSimulateCmd() *cobra.Command {
	cfg := &simulateConfig{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a push script against a map",
		Long: `Load a map, start the physics and animation loops and run a Lua
script that pushes objects around. Prints one line per push.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd.Context(), cfg, cmd)
		},
	}

	cmd.Flags().StringVar(&cfg.mapPath, "map", "", "map file path")
	cmd.Flags().StringVar(&cfg.scriptPath, "script", "", "Lua script path")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runSimulate(ctx context.Context, cfg *simulateConfig, cmd *cobra.Command) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	path, err := resolveConfigFile()
	if err != nil {
		return fmt.Errorf("failed to locate configuration: %w", err)
	}
	settings, err := config.Load(path, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.Setup("tileworld", version, settings.Log.Format, settings.Log.Level, cmd.ErrOrStderr())
	logger.Info("starting simulation",
		"map", cfg.mapPath,
		"script", cfg.scriptPath,
		"log_format", settings.Log.Format,
	)

	m, err := mapdata.LoadFile(cfg.mapPath, nil, logger)
	if err != nil {
		errutil.LogError(ctx, logger, "map load failed", err)
		return fmt.Errorf("failed to load map: %w", err)
	}
	defer m.Teardown()

	sim := physics.New()
	engine := tween.New(logger)
	coord, err := push.NewCoordinator(m, sim, engine,
		append(settings.CoordinatorOptions(), push.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("failed to create push coordinator: %w", err)
	}
	runner := script.NewRunner(m, coord,
		script.WithLogger(logger),
		script.WithHandler(eventLogger{logger: logger}),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	loopCtx, stopLoops := context.WithCancel(ctx)
	defer stopLoops()

	if settings.Metrics.Addr != "" {
		obsServer := observability.NewServer(settings.Metrics.Addr, version,
			func() bool { return loopCtx.Err() == nil }, push.Collectors()...)
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := obsServer.Stop(shutdownCtx); err != nil {
				logger.Warn("failed to stop observability server", "error", err)
			}
		}()
		go monitorServerErrors(loopCtx, stopLoops, obsErrChan, "observability", logger)
	}

	g, gctx := errgroup.WithContext(loopCtx)
	g.Go(func() error { return engine.Run(gctx, settings.Tween.Tick) })
	g.Go(func() error { return stepPhysics(gctx, sim, settings.Tween.Tick) })

	report, runErr := runner.RunFile(ctx, cfg.scriptPath)
	stopLoops()
	if err := g.Wait(); err != nil {
		logger.Warn("simulation loop failed", "error", err)
	}

	printReport(cmd.OutOrStdout(), report)
	logger.Info("simulation finished", "stats", sim.Stats())
	if runErr != nil {
		errutil.LogError(ctx, logger, "script failed", runErr)
		return fmt.Errorf("script failed: %w", runErr)
	}
	return verifyRegistry(ctx, logger, m)
}

// verifyRegistry checks that every event is still filed under its own tile
// once the script has run.
func verifyRegistry(ctx context.Context, logger *slog.Logger, m *world.Map) error {
	if err := m.Events.Check(); err != nil {
		errutil.LogError(ctx, logger, "registry check failed", err, "map", m.Name)
		return fmt.Errorf("registry check failed: %w", err)
	}
	logger.InfoContext(ctx, "registry verified", "map", m.Name, "tiles", m.Events.Len())
	return nil
}

// resolveConfigFile returns --config, or the XDG config file when present.
func resolveConfigFile() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return xdg.ConfigFile()
}

// stepPhysics advances the simulation every tick until ctx is done.
func stepPhysics(ctx context.Context, sim *physics.Simulation, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sim.Step(tick)
		}
	}
}

// monitorServerErrors cancels the simulation when a background server fails.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, name string, logger *slog.Logger) {
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok && err != nil {
			logger.Error("server failed", "server", name, "error", err)
			cancel()
		}
	}
}

func printReport(w io.Writer, report script.Report) {
	for _, res := range report.Pushes {
		if res.Pushed() {
			_, _ = fmt.Fprintf(w, "%s %s %s moved=%d jumps=+%d/-%d\n",
				res.Mode, res.Outcome, res.Direction, len(res.Moves), res.JumpsActivated, res.JumpsDeactivated)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s reason=%s\n", res.Mode, res.Outcome, res.Reason)
	}
	_, _ = fmt.Fprintf(w, "pushes=%d fired=%d\n", len(report.Pushes), report.Fired)
}
