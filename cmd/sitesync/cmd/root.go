package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	sitesync "github.com/Altinity/site-sync"
	"github.com/Altinity/site-sync/config"
	"github.com/Altinity/site-sync/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	dotEnvFile string
)

var rootCmd = &cobra.Command{
	Use:   "sitesync",
	Short: "Publish a local folder as an S3 static website",
	Long: `sitesync replaces everything under the configured prefix of an S3 bucket
with the content of a local folder, enables static website hosting on the
bucket and shows the resulting URL.

Without a subcommand an interactive form is shown.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		cmd.Annotations = make(map[string]string)
		cmd.Annotations["error"] = ""
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		logging.ReloadGlobalLogger(logging.FormMode)

		log.Info().Msg("Starting sitesync")

		if err := sitesync.Run(ctx); err != nil {
			cmd.Annotations["error"] = err.Error()
			log.Error().
				Stack().
				Err(err).
				Msg("Error running sitesync")
			cmd.PrintErrln("Error:", err)
		}

		log.Info().Msg("Shutting down sitesync")
	},
	PostRun: exitOnError,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sitesync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dotEnvFile, "env-file", ".env", "dotenv file loaded into the environment if it exists")
}

func initConfig() {
	if err := config.InitConfig(cfgFile, dotEnvFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	if err := sitesync.Reload(); err != nil {
		log.Warn().Err(err).Msg("Invalid configuration values were ignored")
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()

	return ctx, cancel
}

func exitOnError(cmd *cobra.Command, args []string) {
	// Wait for pending log messages to be flushed
	time.Sleep(100 * time.Millisecond)
	if cmd.Annotations["error"] != "" {
		os.Exit(1)
	}
}
