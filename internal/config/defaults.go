package config

import "time"

const (
	defaultTokenIssuer      = "go-identity"
	defaultTokenDuration    = 30 * 24 * time.Hour
	defaultPasswordHashCost = 10
	defaultPageSize         = 3
	defaultLogLevel         = "debug"
	defaultAvatarDir        = "./uploads/avatars"
	defaultHTTPAddress      = "localhost:3900"
	defaultRequestTimeout   = 30 * time.Second
)

// defaultConfig returns the built-in values used for every field no other
// source has set. It never carries a token signing key.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			PasswordHashCost: defaultPasswordHashCost,
			PageSize:         defaultPageSize,
			LogLevel:         defaultLogLevel,
		},
		Storage: Storage{
			Files: Files{
				AvatarDir: defaultAvatarDir,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
	}
}
