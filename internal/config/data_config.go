package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type DataConfig struct {
	CensusFile      string `mapstructure:"census_file" validate:"required"`
	DeprivationFile string `mapstructure:"deprivation_file" validate:"required"`
	CensusSkipRows  int    `mapstructure:"census_skip_rows" validate:"gte=0"`
	RegionColumn    string `mapstructure:"region_column" validate:"required"`
	RankColumn      string `mapstructure:"rank_column" validate:"required"`
}

func (config DataConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("data.census_file", "DC1117SC.csv")
	v.SetDefault("data.deprivation_file", "SIMD_2020v2csv.csv")
	v.SetDefault("data.census_skip_rows", 5)
	v.SetDefault("data.region_column", "MMWname")
	v.SetDefault("data.rank_column", "SIMD2020v2_Rank")
}

func (config DataConfig) validate() error {
	return validator.New().Struct(config)
}

func (config DataConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("data.census_file", "CENSUS_FILE"); err != nil {
		return err
	}
	return v.BindEnv("data.deprivation_file", "DEPRIVATION_FILE")
}
