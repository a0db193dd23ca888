// Command hrconsole imports biometric attendance logs, derives daily
// attendance, and manages saved searches over the results.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hrconsole/internal/config"
	"hrconsole/internal/logging"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Loaded in PersistentPreRunE
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hrconsole",
	Short: "hrconsole - HR attendance console",
	Long: `hrconsole turns biometric punch logs (.dat) into per-employee daily
attendance: clock-in, clock-out, hours worked and a status of Absent,
Partial, Present or Overtime.

Imported records can be filtered, browsed interactively, summarised and
exported to CSV. Named searches are kept in the workspace database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ws, err := resolveWorkspace()
		if err != nil {
			return err
		}
		if err := config.LoadDotEnv(filepath.Join(ws, ".env")); err != nil {
			return err
		}

		path := configPath
		if path == "" {
			path = config.DefaultPath(ws)
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := logging.Initialize(ws, cfg.Logging.Settings()); err != nil {
			logger.Warn("file logging disabled", zap.Error(err))
		}
		logging.Boot("hrconsole %s (workspace %s, config %s)", cmd.CommandPath(), ws, path)
		logger.Debug("configuration loaded", zap.String("path", path), zap.String("workspace", ws))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.hrconsole/config.yaml)")

	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(searchesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveWorkspace returns the absolute workspace directory.
func resolveWorkspace() (string, error) {
	ws := workspace
	if ws == "" {
		var err error
		ws, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	return filepath.Abs(ws)
}

// currentConfig returns the loaded config, or defaults when a command runs
// without the root pre-run (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// workspacePath resolves a config path against the workspace.
func workspacePath(p string) string {
	ws, err := resolveWorkspace()
	if err != nil {
		return p
	}
	return config.Resolve(ws, p)
}

// cmdContext returns the command's context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
