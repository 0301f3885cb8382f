package driven

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a raw value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if absent.
	GetInt(key string) int

	// GetInt64 retrieves a 64-bit integer value, or 0 if absent.
	// Backend row ids are int64 throughout.
	GetInt64(key string) int64

	// GetBool retrieves a boolean value, or false if absent.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load re-reads configuration from the backing store.
	Load() error

	// Save persists the current configuration.
	Save() error
}
