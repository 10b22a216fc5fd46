package sitesync

import (
	"fmt"

	"github.com/Altinity/site-sync/config"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// Reload refreshes every configuration key from viper. Keys that fail
// validation keep their previous value; their errors are returned together.
func Reload() error {
	var merr error

	for _, k := range config.Reload() {
		if k.Error != nil {
			log.Error().
				Err(k.Error).
				Str("key", k.Key).
				Interface("oldValue", k.OldValue).
				Interface("newValue", k.NewValue).
				Msg("Failed to load configuration key, ignoring")

			merr = multierr.Append(merr, fmt.Errorf("%s: %w", k.Key, k.Error))
		}
	}

	return merr
}
