package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Backend  Backend `yaml:"backend"`
	Redis    Redis   `yaml:"redis"`
	Game     Game    `yaml:"game"`
}

type Backend struct {
	URL     string        `yaml:"url" env:"BACKEND_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game - defaults used by the headless simulation.
type Game struct {
	ConnectHowMany int    `yaml:"connect-how-many" env-default:"5"`
	FirstPlayer    string `yaml:"first-player" env-default:"X"`
	Rows           int    `yaml:"rows" env-default:"18"`
	Columns        int    `yaml:"columns" env-default:"18"`
	Rounds         int    `yaml:"rounds" env-default:"1"`
	PlayerX        string `yaml:"player-x" env-default:"Monte Carlo Tree Search"`
	PlayerO        string `yaml:"player-o" env-default:"Naive"`
}

// Load - reads the yaml file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
