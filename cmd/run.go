package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/speedkit/minishsplit/datarecording"
	"github.com/speedkit/minishsplit/gba"
	"github.com/speedkit/minishsplit/livesplit"
	"github.com/speedkit/minishsplit/monitoring"
	"github.com/speedkit/minishsplit/splitter"
	"github.com/speedkit/minishsplit/tmc"
)

// envConfig carries the settings that can come from the environment or a
// .env file. Flags take precedence when set explicitly.
type envConfig struct {
	LiveSplitAddr string `env:"MINISHSPLIT_LIVESPLIT_ADDR" envDefault:"localhost:16834"`
	MonitorPort   int    `env:"MINISHSPLIT_MONITOR_PORT" envDefault:"8080"`
	SettingsPath  string `env:"MINISHSPLIT_SETTINGS" envDefault:"settings.yaml"`
	PollHz        int    `env:"MINISHSPLIT_POLL_HZ" envDefault:"60"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Attach to an emulator and drive the LiveSplit timer.",
	Long: `run polls the emulator's work RAM at the configured rate and ` +
		`reports run start, game time, and splits to LiveSplit Server. If no ` +
		`emulator is running, it waits for one to appear.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runSplitter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("settings", "",
		"Path of the milestone settings file")
	runCmd.Flags().String("livesplit", "",
		"Address of the LiveSplit Server instance")
	runCmd.Flags().StringSlice("process", nil,
		"Emulator process name to attach to (repeatable)")
	runCmd.Flags().Int("poll-hz", 0,
		"Memory polling rate in ticks per second")
	runCmd.Flags().Bool("record", false,
		"Record run starts and splits to a SQLite database")
	runCmd.Flags().String("output", "",
		"Path of the recording database")
	runCmd.Flags().Bool("monitor", false,
		"Serve the session state over HTTP")
	runCmd.Flags().Int("monitor-port", 0,
		"Port of the monitoring server")
	runCmd.Flags().Bool("open", false,
		"Open the monitoring page in a browser")
}

func runSplitter(cmd *cobra.Command) {
	cfg := loadEnvConfig(cmd)

	timer := livesplit.NewClient(cfg.LiveSplitAddr)
	if err := timer.Connect(); err != nil {
		fmt.Fprintf(os.Stderr,
			"LiveSplit Server at %s is not reachable yet: %v\n",
			cfg.LiveSplitAddr, err)
	}
	defer timer.Close()

	settings := loadSettings(cfg.SettingsPath)

	hooks, monitor := setupHooks(cmd, cfg, settings)

	processNames, _ := cmd.Flags().GetStringSlice("process")
	gbaCfg := gba.Config{ProcessNames: processNames}

	pollLoop(cfg, gbaCfg, settings, timer, hooks, monitor)
}

func loadEnvConfig(cmd *cobra.Command) envConfig {
	_ = godotenv.Load()

	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Panic(err)
	}

	if addr, _ := cmd.Flags().GetString("livesplit"); addr != "" {
		cfg.LiveSplitAddr = addr
	}

	if path, _ := cmd.Flags().GetString("settings"); path != "" {
		cfg.SettingsPath = path
	}

	if hz, _ := cmd.Flags().GetInt("poll-hz"); hz > 0 {
		cfg.PollHz = hz
	}

	if port, _ := cmd.Flags().GetInt("monitor-port"); port > 0 {
		cfg.MonitorPort = port
	}

	return cfg
}

func loadSettings(path string) tmc.Settings {
	settings, err := tmc.LoadSettings(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr,
				"Settings file %s not found, using defaults\n", path)
			return tmc.DefaultSettings()
		}

		log.Panic(err)
	}

	return settings
}

func setupHooks(
	cmd *cobra.Command,
	cfg envConfig,
	settings tmc.Settings,
) ([]splitter.Hook, *monitoring.Monitor) {
	hooks := []splitter.Hook{splitter.NewSplitLogger(log.Default())}

	if record, _ := cmd.Flags().GetBool("record"); record {
		output, _ := cmd.Flags().GetString("output")
		recorder := datarecording.New(output)
		hooks = append(hooks, datarecording.NewSplitRecorder(recorder))
	}

	var monitor *monitoring.Monitor

	if enabled, _ := cmd.Flags().GetBool("monitor"); enabled {
		monitor = monitoring.NewMonitor().WithPortNumber(cfg.MonitorPort)
		monitor.RegisterSettings(settings)
		url := monitor.StartServer()

		if open, _ := cmd.Flags().GetBool("open"); open {
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
			}
		}

		hooks = append(hooks, monitor)
	}

	return hooks, monitor
}

// pollLoop drives the session. It waits for an emulator process, polls it
// once per tick, and goes back to waiting when the process dies.
func pollLoop(
	cfg envConfig,
	gbaCfg gba.Config,
	settings tmc.Settings,
	timer splitter.Timer,
	hooks []splitter.Hook,
	monitor *monitoring.Monitor,
) {
	ticker := time.NewTicker(time.Second / time.Duration(cfg.PollHz))
	defer ticker.Stop()

	var game *tmc.Game

	for range ticker.C {
		if game == nil {
			emulator, ok := gba.Attach(gbaCfg)
			if !ok {
				continue
			}

			game = tmc.NewGame(emulator, settings)
			for _, hook := range hooks {
				game.AcceptHook(hook)
			}

			if monitor != nil {
				monitor.RegisterSession(game)
			}

			fmt.Fprintln(os.Stderr, "Attached to emulator")
		}

		if !game.Attached() {
			fmt.Fprintln(os.Stderr, "Emulator exited, waiting for a new one")
			game.Close()
			game = nil

			continue
		}

		game.Update(timer)
	}
}
