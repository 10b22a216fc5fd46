package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// redactedKeys are replaced in the stdout dump so credentials don't end up in
// terminal scrollback.
var redactedKeys = []string{"storage.accesskey", "storage.secretkey"}

var writeConfigCmd = &cobra.Command{
	Use:   "writeConfig",
	Short: "Write the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		outFile := cmd.Flag("output").Value.String()

		if outFile != "" {
			if err := viper.SafeWriteConfigAs(outFile); err != nil {
				fmt.Fprintln(cmd.OutOrStderr(), err)
				os.Exit(1)
			}
			return
		}

		settings := viper.AllSettings()
		for _, k := range redactedKeys {
			redact(settings, k)
		}

		yamlSettings, err := yaml.Marshal(settings)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStderr(), err)
			os.Exit(1)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(yamlSettings))
	},
}

func init() {
	rootCmd.AddCommand(writeConfigCmd)

	writeConfigCmd.Flags().StringP("output", "o", "", "File to write config to (default is stdout, with credentials redacted)")
}

// redact masks the non-empty value at the dotted key path of settings.
func redact(settings map[string]interface{}, key string) {
	parts := strings.Split(key, ".")

	m := settings
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]interface{})
		if !ok {
			return
		}
		m = next
	}

	last := parts[len(parts)-1]
	if v, ok := m[last].(string); ok && v != "" {
		m[last] = "********"
	}
}
