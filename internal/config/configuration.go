package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Client  ClientConfig  `yaml:"client"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

type ClientConfig struct {
	BaseURL      string        `yaml:"baseUrl"`
	Token        string        `yaml:"token"`
	Timeout      time.Duration `yaml:"timeout"`
	ProgressHold time.Duration `yaml:"progressHold"`
	LogConfig    LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port          int            `yaml:"port"`
	Concurrency   int            `yaml:"concurrency"`
	RequestConfig RequestConfig  `yaml:"request"`
	Database      DatabaseConfig `yaml:"database"`
	Auth          AuthConfig     `yaml:"auth"`
	CleanConfig   CleanConfig    `yaml:"clean"`
	LogConfig     LogConfig      `yaml:"log"`
}

type RequestConfig struct {
	// SizeLimit is the maximum accepted request body, in megabytes.
	SizeLimit int `yaml:"sizeLimit"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres". sqlite with an empty DSN runs in memory.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type AuthConfig struct {
	Email     string        `yaml:"email"`
	Password  string        `yaml:"password"`
	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTtl"`
}

type CleanConfig struct {
	Schedule string `yaml:"schedule"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

func Default() *Configuration {
	return &Configuration{
		Client: ClientConfig{
			BaseURL:      "http://localhost:8450",
			Timeout:      60 * time.Second,
			ProgressHold: 2 * time.Second,
			LogConfig:    LogConfig{Level: "info", Format: "text", Output: "stdout"},
		},
		Server: ServerConfig{
			Port:          8450,
			Concurrency:   256,
			RequestConfig: RequestConfig{SizeLimit: 512},
			Database:      DatabaseConfig{Driver: "sqlite"},
			Auth: AuthConfig{
				Email:     "admin@localhost",
				Password:  "admin",
				JWTSecret: "stowed-dev-secret",
				TokenTTL:  24 * time.Hour,
			},
			CleanConfig: CleanConfig{Schedule: "@every 10m"},
			LogConfig:   LogConfig{Level: "info", Format: "text", Output: "stdout"},
		},
		Storage: StorageConfig{Path: "storage"},
	}
}

// LoadConfiguration reads the yaml configuration file, falling back to
// defaults when the file does not exist.
func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	cfg := Default()
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
