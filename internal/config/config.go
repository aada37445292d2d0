package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBUrl    string `mapstructure:"DB_URL"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	// Tracking thresholds. Tunable rather than hardcoded so a deployment can
	// match its actual campus geometry.
	MinPointSeparationM float64 `mapstructure:"MIN_POINT_SEPARATION_M"`
	HeatCellSizeM       float64 `mapstructure:"HEAT_CELL_SIZE_M"`
	FogCellSizeM        float64 `mapstructure:"FOG_CELL_SIZE_M"`
	ExploredRadiusM     float64 `mapstructure:"EXPLORED_RADIUS_M"`
	CampusAreaM2        float64 `mapstructure:"CAMPUS_AREA_M2"`
	POIVisitRadiusM     float64 `mapstructure:"POI_VISIT_RADIUS_M"`
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("MIN_POINT_SEPARATION_M", 3.0)
	viper.SetDefault("HEAT_CELL_SIZE_M", 10.0)
	viper.SetDefault("FOG_CELL_SIZE_M", 50.0)
	viper.SetDefault("EXPLORED_RADIUS_M", 50.0)
	viper.SetDefault("CAMPUS_AREA_M2", 1_000_000.0)
	viper.SetDefault("POI_VISIT_RADIUS_M", 30.0)

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	err = viper.Unmarshal(&c)
	return
}
