package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHEET_ATLAS"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Workbook WorkbookConfig `mapstructure:"workbook"`
	History  HistoryConfig  `mapstructure:"history"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type WorkbookConfig struct {
	Paths           []string      `mapstructure:"paths"`
	Sheet           string        `mapstructure:"sheet"`
	S3              S3Config      `mapstructure:"s3"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type S3Config struct {
	Location string `mapstructure:"location"`
	Profile  string `mapstructure:"profile"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

type HistoryConfig struct {
	DbPath string `mapstructure:"db_path"`
	Limit  int    `mapstructure:"limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "9090")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("workbook.paths", []string{})
	v.SetDefault("workbook.sheet", "")
	v.SetDefault("workbook.refresh_interval", time.Duration(0))
	v.SetDefault("workbook.s3.location", "")
	v.SetDefault("workbook.s3.profile", "")
	v.SetDefault("workbook.s3.region", "")
	v.SetDefault("workbook.s3.endpoint", "")
	v.SetDefault("history.db_path", "")
	v.SetDefault("history.limit", 20)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads defaults, an optional config file and SHEET_ATLAS_* environment
// variables, in increasing order of precedence. SERVER_HOST and SERVER_PORT are
// honored for compatibility with existing .env files.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.host", EnvPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "SERVER_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
