package config

import (
	"fmt"

	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/captainblair/vertex/pkg/mq"
	"github.com/captainblair/vertex/pkg/mysql"
	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Config struct {
	API      API           `mapstructure:"api"`
	Metrics  Metrics       `mapstructure:"metrics"`
	Database Database      `mapstructure:"database"`
	RabbitMQ mq.Config     `mapstructure:"rabbitmq"`
	Daraja   daraja.Config `mapstructure:"daraja"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Metrics struct {
	Port string `mapstructure:"port"`
}

type Database struct {
	Driver string       `mapstructure:"driver"`
	MySQL  mysql.Config `mapstructure:",squash"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
