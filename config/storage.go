package config

var (
	// region Storage.

	// StorageAccessKey is the access key ID used to sign S3 requests.
	StorageAccessKey = NewKey("storage.accessKey",
		WithEnv("ACCESS_KEY", "AWS_ACCESS_KEY"),
		WithValidString())

	// StorageSecretKey is the secret access key used to sign S3 requests.
	StorageSecretKey = NewKey("storage.secretKey",
		WithEnv("SECRET_KEY", "AWS_SECRET_KEY"),
		WithValidString())

	// StorageBucket is the bucket the site is published to.
	StorageBucket = NewKey("storage.bucket",
		WithEnv("BUCKET_NAME"),
		WithValidString())

	// StorageRegion is the bucket region. It is also part of the website URL.
	StorageRegion = NewKey("storage.region",
		WithEnv("REGION", "AWS_REGION"),
		WithValidString())

	// StorageEndpoint overrides the S3 endpoint, for S3-compatible services.
	StorageEndpoint = NewKey("storage.endpoint",
		WithEnv("S3_ENDPOINT"),
		WithValidURLOrEmpty())

	// endregion.
)
