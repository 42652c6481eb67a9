package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
	"github.com/spf13/cobra"

	"github.com/archon-search/actorcore/config"
	"github.com/archon-search/actorcore/internal/baselib/actor"
	"github.com/archon-search/actorcore/internal/build"
)

var cfgPath string

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "actorctl",
	Short: "Operate a small pool of actorcore demo actors",
	Long: `actorctl spawns demoactor fixtures wired to the actorcore runtime
and lets an operator observe their published state, kill their shared
switch, or ask them to quit gracefully.`,
	PersistentPreRunE: loadConfigAndLogger,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgPath, "config", "",
		"path to an actorcore.yaml config file (default: auto-discovered)",
	)

	rootCmd.AddCommand(demoCmd)
}

// loadConfigAndLogger loads config.Config (from --config, or AutoLoad's
// search path / defaults otherwise) and wires a btclog.Logger at the
// configured level into both the actor runtime and the config package
// itself.
func loadConfigAndLogger(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()

	var cfg *config.Config
	var err error
	if cfgPath != "" {
		cfg, err = loader.LoadFromFile(cfgPath)
	} else {
		cfg, err = loader.AutoLoad()
	}
	if err != nil {
		return fmt.Errorf("actorctl: loading config: %w", err)
	}

	// When the configured output is a directory rather than a console
	// stream, logs fan out to both the console and a rotating log file.
	var fileWriter io.Writer
	switch cfg.Log.Output {
	case "", "stdout", "stderr":
	default:
		w, err := build.NewRotatingWriter(build.RotatorOptions{
			Dir:  cfg.Log.Output,
			Name: "actorctl",
		})
		if err != nil {
			return fmt.Errorf("actorctl: initializing log rotation: %w", err)
		}
		fileWriter = w
	}

	handler := build.NewConsoleFileHandler(os.Stderr, fileWriter)
	handler.SetLevel(logLevelToBtclog(cfg.Log.Level))

	logger := btclogv2.NewSLogger(handler)
	actor.UseLogger(logger)
	config.UseLogger(logger)

	if !cmd.Flags().Changed("capacity") {
		demoCapacity = cfg.Actor.DefaultMailboxSize
	}
	demoSpawnOpts = cfg.Actor.SpawnOptions()

	return nil
}

func logLevelToBtclog(level config.LogLevel) btclog.Level {
	// FanoutHandler.SetLevel takes the v1 btclog.Level type --
	// internal/build straddles both versions (v2 for the Handler
	// interface, v1 for the Level constants), so this mirrors that split
	// rather than introducing a third convention.
	switch level {
	case config.LogLevelTrace:
		return btclog.LevelTrace
	case config.LogLevelDebug:
		return btclog.LevelDebug
	case config.LogLevelWarn:
		return btclog.LevelWarn
	case config.LogLevelError:
		return btclog.LevelError
	default:
		return btclog.LevelInfo
	}
}
