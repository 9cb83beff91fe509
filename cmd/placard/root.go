package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/placard"
	"github.com/phanxgames/placard/ecs"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	scriptPath string
	withECS    bool
	noOverlay  bool
)

// rootCmd runs the note wall.
var rootCmd = &cobra.Command{
	Use:   "placard",
	Short: "A 3D wall of draggable sticky notes",
	Long: `Placard opens a window showing labeled placards floating in 3D space.
Type to write a note, press Enter to pin it, drag notes around with the mouse.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err := placard.NewLogger(cfg.Logging)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		font, err := placard.DefaultFont(cfg.Label.FontSize)
		if err != nil {
			return err
		}

		board := placard.NewBoard(cfg, font, placard.WithLogger(logger))
		if withECS {
			board.Scene().SetEntityStore(ecs.NewDonburiStore(donburi.NewWorld()))
		}

		runCfg := placard.RunConfig{ShowOverlay: !noOverlay}
		if scriptPath != "" {
			data, err := os.ReadFile(scriptPath)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := placard.LoadScript(data)
			if err != nil {
				return err
			}
			board.SetScriptRunner(runner)
			runCfg.ExitOnScriptDone = true
			logger.Info("running script", zap.String("path", scriptPath))
		}

		return placard.Run(board, runCfg)
	},
}

// loadConfig returns the defaults when no config file was given.
func loadConfig() (*placard.Config, error) {
	if configPath == "" {
		cfg := placard.DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}
	return placard.LoadConfig(configPath)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "Run a JSON script and exit when it finishes")
	rootCmd.Flags().BoolVar(&withECS, "ecs", false, "Mirror notes into a Donburi world")
	rootCmd.Flags().BoolVar(&noOverlay, "no-overlay", false, "Hide the control overlay")
}
