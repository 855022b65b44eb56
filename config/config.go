package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
		Mongo struct {
			Url  string `mapstructure:"URL"`
			Name string `mapstructure:"NAME"`
		}
	}

	RTC struct {
		AppID        uint32 `mapstructure:"APP_ID"`
		ServerSecret string `mapstructure:"SERVER_SECRET"`
		TokenTTL     int64  `mapstructure:"TOKEN_TTL"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ERON")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	if config.RTC.TokenTTL == 0 {
		config.RTC.TokenTTL = 3600
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
