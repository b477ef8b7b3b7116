package config

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type ReportConfig struct {
	AgeThreshold         int    `mapstructure:"age_threshold"`
	NormalizeRegionNames bool   `mapstructure:"normalize_region_names"`
	Schedule             string `mapstructure:"schedule"`
}

func (config ReportConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("report.age_threshold", 15)
	v.SetDefault("report.normalize_region_names", false)
	v.SetDefault("report.schedule", "")
}

func (config ReportConfig) validate() error {

	if config.AgeThreshold < 0 {
		return fmt.Errorf("age_threshold must be non-negative, got %d", config.AgeThreshold)
	}

	if config.Schedule != "" {
		if _, err := cron.ParseStandard(config.Schedule); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", config.Schedule, err)
		}
	}

	return nil
}

func (config ReportConfig) bindEnvironmentVariables(v *viper.Viper) error {

	err := v.BindEnv("report.age_threshold", "AGE_THRESHOLD")
	if err != nil {
		return err
	}

	err = v.BindEnv("report.normalize_region_names", "NORMALIZE_REGION_NAMES")
	if err != nil {
		return err
	}

	return v.BindEnv("report.schedule", "REPORT_SCHEDULE")
}
