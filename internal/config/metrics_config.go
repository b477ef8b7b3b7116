package config

import (
	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

func (config MetricsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("metrics.address", "METRICS_ADDRESS")
}
