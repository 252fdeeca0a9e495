package envvar

const (
	// BfrvcEnv is the environment variable used to determine the environment
	BfrvcEnv = "BFRVC_ENV"

	// BfrvcBasePath is the environment variable used to override the base directory
	BfrvcBasePath = "BFRVC_BASE_PATH"

	// BfrvcUserAgent is the environment variable used to override the HTTP user agent
	BfrvcUserAgent = "BFRVC_USER_AGENT"
)
