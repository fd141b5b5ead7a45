package app

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dataarena/dataarena-backend/internal/platform/logger"
	"github.com/dataarena/dataarena-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CORSOrigins     []string
	RedisAddr       string
	RedisChannel    string
}

// fileConfig is the optional YAML overlay loaded from CONFIG_FILE.
// Environment variables win over file values.
type fileConfig struct {
	Port         string   `yaml:"port"`
	CORSOrigins  []string `yaml:"cors_origins"`
	RedisAddr    string   `yaml:"redis_addr"`
	RedisChannel string   `yaml:"redis_channel"`
}

func LoadConfig(log *logger.Logger) Config {
	// .env is optional; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded .env file")
	}

	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadConfigFile(path, &fc); err != nil {
			log.Warn("Config file ignored", "path", path, "error", err)
		}
	}

	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)

	cfg := Config{
		Port:            utils.GetEnv("PORT", firstNonEmpty(fc.Port, "8080"), log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		CORSOrigins:     fc.CORSOrigins,
		RedisAddr:       utils.GetEnv("REDIS_ADDR", fc.RedisAddr, log),
		RedisChannel:    utils.GetEnv("REDIS_CHANNEL", firstNonEmpty(fc.RedisChannel, "dataarena.events"), log),
	}
	return cfg
}

func loadConfigFile(path string, fc *fileConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
