package opener

// SourceConfiguration describes how a single Source is obtained.
// Exactly one of its fields needs to be set.
type SourceConfiguration struct {
	// Path of a file on the local file system.
	File string `json:"file,omitempty"`

	// Object stored in a bucket that is supported by gocloud.dev.
	Bucket *BucketConfiguration `json:"bucket,omitempty"`

	// Value of a key stored in Redis.
	Redis *RedisConfiguration `json:"redis,omitempty"`

	// Response body of an HTTP GET request.
	HTTP *HTTPConfiguration `json:"http,omitempty"`

	// Concatenation of a series of other sources.
	Joined *JoinedConfiguration `json:"joined,omitempty"`
}

// BucketConfiguration refers to an object in a bucket. The URL is
// passed to gocloud.dev's blob.OpenBucket(), meaning that URLs like
// "s3://bucket?region=eu-west-1", "gs://bucket", "azblob://container",
// "file:///path/to/directory" and "mem://" are accepted.
type BucketConfiguration struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// RedisConfiguration refers to a key stored in Redis. The URL has the
// form "redis://[:password@]host:port[/db]".
type RedisConfiguration struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// HTTPConfiguration refers to a resource that is fetched using HTTP.
type HTTPConfiguration struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// JoinedConfiguration lists sources whose contents are concatenated.
// The sources are opened one at a time, as they are reached.
type JoinedConfiguration struct {
	Sources []SourceConfiguration `json:"sources"`
}
