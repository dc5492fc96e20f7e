package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// AppConfig holds the application-level configuration
type AppConfig struct {
	Port        int  `mapstructure:"port"`
	Debug       bool `mapstructure:"debug"`
	HistorySize int  `mapstructure:"history_size"`
	MaxUploadMB int  `mapstructure:"max_upload_mb"`
}

var Config *AppConfig

func LoadConfig(path string) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("debug", false)
	viper.SetDefault("history_size", 50)
	viper.SetDefault("max_upload_mb", 32)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("could not read config file, using defaults: %v", err)
	}

	var appConfig AppConfig
	if err := viper.Unmarshal(&appConfig); err != nil {
		log.Fatalf("unable to decode config into struct: %v", err)
	}

	Config = &appConfig

	fmt.Println("configuration loaded")
}
