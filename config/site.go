package config

var (
	// region Site.

	// SitePrefix is the key prefix the folder is published under. It is
	// expected to end with "/" and is used verbatim for deletion, upload and
	// the website URL.
	SitePrefix = NewKey("site.prefix",
		WithEnv("FOLDER_NAME"),
		WithValidString())

	// SiteWebsiteDomain is the static website domain of the bucket. When empty,
	// s3-website.<region>.amazonaws.com is used.
	SiteWebsiteDomain = NewKey("site.websiteDomain",
		WithValidString())

	// SiteFolder pre-fills the local folder in the form.
	SiteFolder = NewKey("site.folder",
		WithEnv("SITE_FOLDER"),
		WithValidExistingPathOrEmpty())

	// endregion.
)
