package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"8080"`
	Game       Game   `yaml:"game"`
	Wallet     Wallet `yaml:"wallet"`
}

type Game struct {
	TurnSeconds     int `yaml:"turn-seconds" env-default:"30"`
	BotDelaySeconds int `yaml:"bot-delay-seconds" env-default:"1"`
}

type Wallet struct {
	Backend string `yaml:"backend" env-default:"memory"`
	Redis   Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Wallet) IsRedis() bool {
	return that.Backend == "redis"
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
