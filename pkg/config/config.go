package config

// AppName is the name used for config, data and state directories.
const AppName = "diary"

// Admin is the single credential pair that unlocks post management.
// It is a cosmetic gate, not a security boundary.
type Admin struct {
	Username string `koanf:"username"` // Admin username.
	Password string `koanf:"password"` // Admin password, compared in plain text.
}

// Config struct holds the core, application-agnostic configuration.
type Config struct {
	Admin        Admin  `koanf:"admin"`          // Credentials for the login gate.
	MinFreeBytes uint64 `koanf:"min_free_bytes"` // Refuse to persist when less space is available. 0 disables the check.
}

// Default returns the default core configuration.
func Default() *Config {
	return &Config{
		Admin: Admin{
			Username: "admin",
			Password: "password",
		},
		MinFreeBytes: 1 << 20,
	}
}
