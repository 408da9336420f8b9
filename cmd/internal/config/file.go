package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Store          string `toml:"store"`
	Table          string `toml:"table"`
	StatusIndex    string `toml:"status_index"`
	DynamoEndpoint string `toml:"dynamodb_endpoint"`
	SQLitePath     string `toml:"sqlite_path"`
	RedisAddr      string `toml:"redis_addr"`
	RedisPassword  string `toml:"redis_password"`
	RedisDB        int    `toml:"redis_db"`
	Operator       string `toml:"operator"`
	LogLevel       string `toml:"log_level"`
}

// LoadWithFile layers a TOML file under the environment: a key set in the
// environment wins over the file, and the file wins over the defaults. A
// missing file is not an error.
func LoadWithFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fromFile(&cfg.Store, "STORE_DRIVER", strings.ToLower(fc.Store))
	fromFile(&cfg.Table, "DYNAMODB_TABLE", fc.Table)
	fromFile(&cfg.StatusIndex, "STATUS_INDEX", fc.StatusIndex)
	fromFile(&cfg.DynamoEndpoint, "DYNAMODB_ENDPOINT", fc.DynamoEndpoint)
	fromFile(&cfg.SQLitePath, "SQLITE_PATH", expandTilde(fc.SQLitePath))
	fromFile(&cfg.RedisAddr, "REDIS_ADDR", fc.RedisAddr)
	fromFile(&cfg.RedisPassword, "REDIS_PASSWORD", fc.RedisPassword)
	fromFile(&cfg.Operator, "MEETY_OPERATOR", fc.Operator)
	fromFile(&cfg.LogLevel, "LOG_LEVEL", strings.ToLower(fc.LogLevel))
	if fc.RedisDB != 0 && os.Getenv("REDIS_DB") == "" {
		cfg.RedisDB = fc.RedisDB
	}

	applyLogLevel(cfg.LogLevel)
	return cfg, nil
}

// DefaultFilePath is $XDG_CONFIG_HOME/meety/config.toml, falling back to
// ~/.config/meety/config.toml.
func DefaultFilePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meety", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "meety", "config.toml")
	}
	return ""
}

func fromFile(dst *string, envKey, value string) {
	if value == "" || os.Getenv(envKey) != "" {
		return
	}
	*dst = value
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
