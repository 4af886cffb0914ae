// Package config loads the reference host's runtime configuration,
// mirroring the teacher's viper-backed initConfig helpers
// (collab_server/main.go, gateway/main.go): a YAML file resolved across
// a handful of candidate paths, unmarshaled into mapstructure-tagged
// structs.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the reference host's configuration surface: where it
// listens, how it reaches MySQL/Redis/Kafka, and the JWT secret used to
// verify authors attached to incoming edits.
type Config struct {
	Running struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"running"`
	Mysql struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"mysql"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Auth struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"auth"`
}

// Load reads docengine.yaml from the given name/paths via viper,
// falling back to the working directory and a conventional ./config
// directory the way the teacher's cmd binaries do.
func Load(name string, paths ...string) (*Config, error) {
	v := viper.New()
	if name == "" {
		name = "docengine"
	}
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("running.port", 8080)
	v.SetDefault("kafka.topic", "docengine.ops")
	v.SetDefault("auth.secret", "dev-secret")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
