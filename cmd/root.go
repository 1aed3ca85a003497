package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uketsuke/internal/app"
	"uketsuke/internal/config"
	"uketsuke/internal/log"
	"uketsuke/internal/roster"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "uketsuke",
	Short:   "Open-house front desk roster",
	Long:    `A terminal front desk for campus open-house reception: import the sign-up roster, check attendees in by name, register walk-ins, and track per-program capacity.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/uketsuke/config.yaml)")
	rootCmd.PersistentFlags().StringP("roster", "r", "",
		"roster file (.csv or .xlsx) to import on startup")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable re-import when the roster file changes")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log to uketsuke.log")

	_ = viper.BindPFlag("roster", rootCmd.PersistentFlags().Lookup("roster"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("no_preference_program", defaults.NoPreferenceProgram)
	viper.SetDefault("capacity_policy", defaults.CapacityPolicy)
	viper.SetDefault("export_schema", defaults.ExportSchema)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_kana", defaults.UI.ShowKana)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .uketsuke/config.yaml (current directory)
		// 2. ~/.config/uketsuke/config.yaml (user config)
		if _, err := os.Stat(".uketsuke/config.yaml"); err == nil {
			viper.SetConfigFile(".uketsuke/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "uketsuke"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .uketsuke/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".uketsuke/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
	if len(cfg.Programs) == 0 {
		cfg.Programs = defaults.Programs
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug || os.Getenv("UKETSUKE_DEBUG") != "" {
		cleanup, err := log.Init("uketsuke.log", "uketsuke")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
		log.SetMinLevel(log.LevelDebug)
	}

	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	// Store the config file path for saving capacity changes
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".uketsuke/config.yaml"
	}

	store := roster.New(cfg.RosterPrograms(), cfg.Policy(), cfg.NoPreferenceProgram)
	model := app.New(store, cfg, configFilePath, cfg.Roster)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()

	// Close the final model: the watcher may have been created after an
	// import, so the original model's handles are not enough.
	if fm, ok := final.(app.Model); ok {
		if closeErr := fm.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	} else if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
