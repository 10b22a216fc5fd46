package cmd

import (
	"fmt"

	sitesync "github.com/Altinity/site-sync"
	"github.com/Altinity/site-sync/config"
	"github.com/Altinity/site-sync/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a folder without the interactive form",
	Example: `  sitesync publish -f ./public
  FOLDER_NAME=docs/ sitesync publish --folder ./site`,
	PreRun: func(cmd *cobra.Command, args []string) {
		cmd.Annotations = make(map[string]string)
		cmd.Annotations["error"] = ""
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		logging.ReloadGlobalLogger(logging.ConsoleMode)

		folder, _ := cmd.Flags().GetString("folder")
		if folder == "" {
			folder = config.SiteFolder.String()
		}

		url, err := sitesync.PublishOnce(ctx, folder)
		if err != nil {
			cmd.Annotations["error"] = err.Error()
			log.Error().
				Err(err).
				Msg("Error publishing site")
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), url)
	},
	PostRun: exitOnError,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringP("folder", "f", "", "Local folder to publish (default is site.folder / SITE_FOLDER)")
}
