// Package cmd provides the CLI commands for pagemark.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagemark/pagemark/internal/config"
	"github.com/pagemark/pagemark/internal/logging"
	"github.com/pagemark/pagemark/internal/profiling"
	"github.com/pagemark/pagemark/internal/ui"
	"github.com/pagemark/pagemark/pkg/version"
)

// Flags shared by every command.
var (
	flagBaseURL string
	flagEngine  string
	debugMode   bool

	loggingCleanup func()
)

// Profiling flags.
var (
	profileCPU   string
	profileMem   string
	profileTrace string
	profiler     = profiling.NewProfiler()
	cpuCleanup   func()
	traceCleanup func()
)

// NewRootCmd creates the root command for the pagemark CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagemark",
		Short: "Terminal client for the document snippet search backend",
		Long: `pagemark searches indexed PDF documents and opens matched snippets
in the browser-based page viewer, highlighted in place.

Running 'pagemark' with no arguments starts the interactive browser:
type a query, walk the results, and press enter to open the match.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !ui.IsTTY(os.Stdout) {
				return fmt.Errorf("interactive mode needs a terminal; use 'pagemark search' instead")
			}
			return ui.RunBrowse(cfg)
		},
	}

	cmd.SetVersionTemplate("pagemark version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&flagEngine, "engine", "", "Search engine: jsonl or typesense (overrides config)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.pagemark/logs/")

	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newPresetsCmd())
	cmd.AddCommand(newOpenCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startProfilingAndLogging installs file logging and starts any
// requested profiles before a command runs. The TUI owns the terminal,
// so nothing is ever logged to stdout.
func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg = logging.DebugConfig()
	}

	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		// Logging is observability, not functionality.
		slog.Warn("file_logging_unavailable", slog.String("error", err.Error()))
	} else {
		loggingCleanup = cleanup
	}

	if debugMode {
		slog.Info("debug_logging_enabled", slog.String("log_file", logging.DefaultLogPath()))
	}

	if profileCPU != "" {
		cpuCleanup, err = profiler.StartCPU(profileCPU)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}
	if profileTrace != "" {
		traceCleanup, err = profiler.StartTrace(profileTrace)
		if err != nil {
			if cpuCleanup != nil {
				cpuCleanup()
			}
			return fmt.Errorf("failed to start trace: %w", err)
		}
	}

	return nil
}

func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if cpuCleanup != nil {
		cpuCleanup()
		cpuCleanup = nil
	}
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profileMem != "" {
		if err := profiler.WriteHeap(profileMem); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
	}

	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// loadConfig merges defaults, config files, and environment, then
// applies command-line overrides on top.
func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	if flagBaseURL != "" {
		cfg.Backend.BaseURL = flagBaseURL
	}
	if flagEngine != "" {
		cfg.Backend.Engine = flagEngine
	}
	if flagBaseURL != "" || flagEngine != "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
