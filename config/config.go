package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeLocal = "local"
	ModeHost  = "host"
	ModeJoin  = "join"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Address  string `mapstructure:"address"`
	Port     int    `mapstructure:"port"`
	Size     int    `mapstructure:"size"`
	LogLevel string `mapstructure:"log-level"`
	WebAddr  string `mapstructure:"web-addr"`
	History  string `mapstructure:"history"`
}

// Load reads flags from args, then REVERSI_* environment variables, then the
// config file named by --config if there is one. Flags win.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("mode", ModeLocal, "local, host or join")
	fs.String("address", "", "address to bind when hosting, or of the host when joining")
	fs.Int("port", 55555, "port to bind or connect to")
	fs.Int("size", 8, "board size, both players must agree")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("web-addr", "", "serve a view of the game on this address")
	fs.String("history", "", "readline history file")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("REVERSI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err = v.BindPFlags(fs)
	if err != nil {
		return nil, err
	}

	if cfgPath := v.GetString("config"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		if err != nil {
			return nil, err
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.setup()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setup() error {
	c.Mode = strings.ToLower(c.Mode)

	switch c.Mode {
	case ModeLocal:
	case ModeHost:
		if c.Address == "" {
			c.Address = "0.0.0.0"
		}
	case ModeJoin:
		if c.Address == "" {
			c.Address = "127.0.0.1"
		}
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("bad port %d", c.Port)
	}
	if c.Size < 4 {
		return errors.New("size must be at least 4")
	}

	return nil
}
