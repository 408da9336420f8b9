package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	StoreDynamoDB = "dynamodb"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Store          string
	Table          string
	StatusIndex    string
	DynamoEndpoint string
	SQLitePath     string
	BedrockModelID string
	BotID          string
	BotAliasID     string
	LocaleID       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LockTTL        time.Duration
	LockWait       time.Duration
	OperatorSecret string
	Operator       string
	Port           string
	LogLevel       string
}

// LoadDotEnv reads a .env file for local runs. Lambdas get their
// environment from the function configuration and never call this.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to load .env file: %v", err)
	}
}

func Load() *Config {
	cfg := &Config{
		Store:          strings.ToLower(getEnv("STORE_DRIVER", StoreDynamoDB)),
		Table:          getEnv("DYNAMODB_TABLE", "Meetings"),
		StatusIndex:    getEnv("STATUS_INDEX", "StatusIndex"),
		DynamoEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		SQLitePath:     getEnv("SQLITE_PATH", "./meetings.db"),
		BedrockModelID: getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		BotID:          os.Getenv("BOT_ID"),
		BotAliasID:     getEnv("BOT_ALIAS_ID", "TSTALIASID"),
		LocaleID:       getEnv("LOCALE_ID", "en_US"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        atoi(getEnv("REDIS_DB", "0")),
		LockTTL:        parseDur(getEnv("LOCK_TTL", "10s"), 10*time.Second),
		LockWait:       parseDur(getEnv("LOCK_WAIT", "3s"), 3*time.Second),
		OperatorSecret: os.Getenv("OPERATOR_JWT_SECRET"),
		Operator:       os.Getenv("MEETY_OPERATOR"),
		Port:           getEnv("PORT", "6060"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
	applyLogLevel(cfg.LogLevel)
	return cfg
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DEBUG)
	case "warn":
		log.SetLevel(log.WARN)
	case "error":
		log.SetLevel(log.ERROR)
	default:
		log.SetLevel(log.INFO)
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
