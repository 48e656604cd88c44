// Package config reads process configuration from the environment or a
// YAML file.
package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

type Config struct {
	Env     string        `yaml:"env" env:"STICKYBOARD_ENV" env-default:"local"`
	DataDir string        `yaml:"data_dir" env:"STICKYBOARD_DATA_DIR" env-default:".stickyboard"`
	Adapter string        `yaml:"adapter" env:"STICKYBOARD_ADAPTER" env-default:"fs"`
	HTTP    HTTPConfig    `yaml:"http"`
	Remote  RemoteConfig  `yaml:"remote"`
	Weather WeatherConfig `yaml:"weather"`
	Auth    AuthConfig    `yaml:"auth"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"STICKYBOARD_HTTP_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"STICKYBOARD_HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"STICKYBOARD_HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type RemoteConfig struct {
	BaseURL string        `yaml:"base_url" env:"STICKYBOARD_API_BASE_URL" env-default:"https://jsonplaceholder.typicode.com"`
	Timeout time.Duration `yaml:"timeout" env:"STICKYBOARD_API_TIMEOUT" env-default:"15s"`
}

type WeatherConfig struct {
	BaseURL string `yaml:"base_url" env:"STICKYBOARD_WEATHER_BASE_URL" env-default:"https://api.openweathermap.org/data/2.5"`
	APIKey  string `yaml:"api_key" env:"STICKYBOARD_WEATHER_API_KEY"`
	Units   string `yaml:"units" env:"STICKYBOARD_WEATHER_UNITS" env-default:"metric"`
	City    string `yaml:"city" env:"STICKYBOARD_WEATHER_CITY" env-default:"Cairo"`
}

type AuthConfig struct {
	Username string `yaml:"username" env:"STICKYBOARD_AUTH_USERNAME" env-default:"youssef"`
	Password string `yaml:"password" env:"STICKYBOARD_AUTH_PASSWORD" env-default:"marzouk2024"`
}
