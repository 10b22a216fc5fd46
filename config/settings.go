package config

// Settings is the storage and site configuration of one process, captured
// once after the config is loaded. Missing values are kept as empty strings;
// S3 rejects them with its own error.
type Settings struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Prefix        string
	Region        string
	Endpoint      string
	WebsiteDomain string
}

// LoadSettings snapshots the current key values.
func LoadSettings() Settings {
	return Settings{
		AccessKey:     StorageAccessKey.String(),
		SecretKey:     StorageSecretKey.String(),
		Bucket:        StorageBucket.String(),
		Prefix:        SitePrefix.String(),
		Region:        StorageRegion.String(),
		Endpoint:      StorageEndpoint.String(),
		WebsiteDomain: SiteWebsiteDomain.String(),
	}
}
