// Package config loads process-wide settings: defaults, then an
// optional wordbattle.yml in the working directory, then WORDBATTLE_*
// environment variables, then explicit key=value overrides. Each
// layer wins over the previous one.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DataPath        string
	DefaultLanguage string
	DefaultLexicon  string
	BingoBonus      int
	RedisURL        string
	GameExpiry      time.Duration
	LogLevel        string
}

// Load fills the config. Args are key=value overrides ("bingo-bonus=75"),
// handy for tests and the shell; a leading dash on the key is fine.
func (c *Config) Load(args []string) error {
	v := viper.New()
	v.SetDefault("data-path", "./data")
	v.SetDefault("default-language", "english")
	v.SetDefault("default-lexicon", "default")
	v.SetDefault("bingo-bonus", 50)
	v.SetDefault("redis-url", "")
	v.SetDefault("game-expiry", 30*24*time.Hour)
	v.SetDefault("log-level", "info")

	v.SetConfigName("wordbattle")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("wordbattle")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		v.Set(strings.TrimLeft(key, "-"), val)
	}

	c.DataPath = v.GetString("data-path")
	c.DefaultLanguage = v.GetString("default-language")
	c.DefaultLexicon = v.GetString("default-lexicon")
	c.BingoBonus = v.GetInt("bingo-bonus")
	c.RedisURL = v.GetString("redis-url")
	c.GameExpiry = v.GetDuration("game-expiry")
	c.LogLevel = v.GetString("log-level")
	return nil
}
