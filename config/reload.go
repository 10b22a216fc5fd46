package config

import (
	"cmp"
	"slices"
	"sync"
)

var configReloadMutex = &sync.Mutex{}

// Reload re-reads every registered key from viper and returns the keys whose
// value changed or failed validation, ordered by name.
func Reload() []*ReloadedKey {
	configReloadMutex.Lock()
	defer configReloadMutex.Unlock()

	var reloadedKeys []*ReloadedKey

	for k := range keys {
		update := keys[k].Update()
		if update != nil {
			reloadedKeys = append(reloadedKeys, update)
		}
	}

	slices.SortFunc(reloadedKeys, func(a, b *ReloadedKey) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return reloadedKeys
}
