package config

import (
	"github.com/spf13/viper"
)

// DBConfig is optional: an empty connection string disables report history.
type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
}

func (config DBConfig) Enabled() bool {
	return config.ConnectionString != ""
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
