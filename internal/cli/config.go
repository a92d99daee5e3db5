package cli

// Config holds CLI configuration
type Config struct {
	StorageType string
	StoragePath string
	RedisURL    string
	OutputDir   string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		StorageType: "sqlite",
		StoragePath: "party.db",
		RedisURL:    "redis://localhost:6379",
		OutputDir:   ".",
		Verbose:     false,
	}
}
