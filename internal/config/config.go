package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"`
	Data    DataConfig    `mapstructure:"data"`
	Report  ReportConfig  `mapstructure:"report"`
	DB      DBConfig      `mapstructure:"db"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var configFile = "./configs/config.yaml"

// Get loads the configuration or terminates the process. CONFIG_PATH overrides
// the default file location; a missing file leaves every key at its default.
func Get() *Config {

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := loadConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	setDefaults(v)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(file); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	} else {
		log.Debugf("config file %s not found, using defaults", file)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	DataConfig{}.setDefaults(v)
	ReportConfig{}.setDefaults(v)
	LoggerConfig{}.setDefaults(v)
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	data, report, db, logger, metrics := DataConfig{}, ReportConfig{}, DBConfig{}, LoggerConfig{}, MetricsConfig{}

	if err := data.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("DataConfig: %w", err))
	}

	if err := report.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("ReportConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := metrics.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("MetricsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Data.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DataConfig: %w", err))
	}

	if err := config.Report.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ReportConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
