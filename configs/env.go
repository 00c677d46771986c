package configs

import (
	"github.com/spf13/viper"
)

// EnvConfig carries the secrets and identifiers the bot reads from the
// environment. Non-secret settings live in application.yml.
type EnvConfig struct {
	ApplicationName string
	PageAccessToken string
	PageID          string
	VerifyToken     string
	AppSecret       string
}

var Env *EnvConfig

// Load reads the environment into Env. Call it after any .env file has been
// loaded into the process environment.
func Load() {
	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "fbmessenger-bot"),
		PageAccessToken: viper.GetString("PAGE_ACCESS_TOKEN"),
		PageID:          viper.GetString("PAGE_ID"),
		VerifyToken:     viper.GetString("VERIFY_TOKEN"),
		AppSecret:       viper.GetString("APP_SECRET"),
	}
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
