package config

var (
	// region Sync.

	// SyncDetectContentType sniffs the content of files whose extension has no
	// content type rule instead of sending application/octet-stream.
	SyncDetectContentType = NewKey("sync.detectContentType",
		WithDefaultValue(false),
		WithValidBool())

	// SyncExclude lists glob patterns of local files that are never uploaded.
	// Patterns are matched against both the relative path and the base name.
	SyncExclude = NewKey("sync.exclude",
		WithDefaultValue([]string{}),
		WithValidStringSlice())

	// SyncUploadPartSize is the part size in bytes used by the transfer manager.
	// Files smaller than this are sent with a single PutObject.
	SyncUploadPartSize = NewKey("sync.upload.partSize",
		WithDefaultValue(5*1024*1024),
		WithValidPositiveInt())

	// SyncUploadConcurrency is how many parts of one file the transfer manager
	// sends in parallel. Files are still uploaded one after another.
	SyncUploadConcurrency = NewKey("sync.upload.concurrency",
		WithDefaultValue(5),
		WithValidPositiveInt())

	// endregion.
)
