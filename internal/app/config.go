package app

import (
	"strings"
	"time"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/utils"
)

type Config struct {
	Mode            string
	Port            string
	AllowedOrigins  []string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func LoadConfig(log *logger.Logger) *Config {
	cfgLog := log.With("component", "Config")

	origins := utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:5173", cfgLog)

	return &Config{
		Mode:            utils.GetEnv("GIN_MODE", "debug", cfgLog),
		Port:            utils.GetEnv("PORT", "8080", cfgLog),
		AllowedOrigins:  strings.Split(origins, ","),
		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "", cfgLog),
		AccessTokenTTL:  time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15, cfgLog)) * time.Minute,
		RefreshTokenTTL: time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 24*7, cfgLog)) * time.Hour,
	}
}
