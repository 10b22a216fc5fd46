package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var keys = make(map[string]*Key)

// Version is overridden at build time with -ldflags "-X ...config.Version=...".
var Version = "dev"

// InitConfig initializes the application's configuration system. Values are
// taken, in order of precedence, from the environment (after loading dotEnv
// if it exists), the config file and the key defaults.
func InitConfig(cfgFile string, dotEnv string) error {
	if dotEnv != "" {
		// Variables already present in the environment win over the .env file.
		if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	viper.SetEnvPrefix("SITESYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("$HOME/.sitesync")
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return err
		}
	}

	return nil
}
